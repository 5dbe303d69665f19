package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSymbol   = errors.New("invalid board symbol")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrInvalidPosition = errors.New("invalid board position")
	ErrNoLegalMove     = errors.New("no legal move")

	ErrIllegalMove  = errors.New("illegal move")
	ErrOutOfRange   = fmt.Errorf("%w: cell is out of range", ErrIllegalMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrIllegalMove)

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameNotFound = errors.New("game not found")
	ErrUnknownLevel = errors.New("unknown difficulty level")

	ErrPlayerNotFound   = errors.New("player not found")
	ErrAlreadyInGame    = errors.New("player is already in a game")
	ErrAlreadyWaiting   = errors.New("player is already waiting for an opponent")
	ErrNotWaiting       = errors.New("player is not waiting for an opponent")
	ErrNotEnoughPlayers = errors.New("not enough players to start a game")
	ErrNotInGame        = errors.New("player is not in this game")
)
