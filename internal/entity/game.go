package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	// Winner of a drawn game.
	ResultTie = "-"
)

const (
	LevelEasy = "easy"
	LevelHard = "hard"
)

const (
	ModeBot         = "bot"
	ModeMultiplayer = "multiplayer"
)

// Game is a single match, either human versus bot or between two players. X always moves first.
type Game struct {
	ID     string `json:"id"`
	Mode   string `json:"mode"`
	Board  Board  `json:"board"`
	Winner string `json:"winner"`
	Status string `json:"status"`
	Turn   Cell   `json:"player_turn"`

	// bot games
	PlayerMark Cell   `json:"player_mark,omitempty"`
	BotMark    Cell   `json:"bot_mark,omitempty"`
	Level      string `json:"level,omitempty"`

	// multiplayer games
	PlayerXID string `json:"player_x_id,omitempty"`
	PlayerOID string `json:"player_o_id,omitempty"`
}

func NewGame(id string, playerMark Cell, level string) (*Game, error) {
	botMark, err := playerMark.Opposite()
	if err != nil {
		return nil, fmt.Errorf("failed to pick bot mark: %w", err)
	}

	if err = ValidateLevel(level); err != nil {
		return nil, err
	}

	return &Game{
		ID:         id,
		Mode:       ModeBot,
		Board:      NewBoard(),
		Status:     StatusOngoing,
		Turn:       PlayerX,
		PlayerMark: playerMark,
		BotMark:    botMark,
		Level:      level,
	}, nil
}

// NewMultiplayerGame pairs two players, the first one gets X.
func NewMultiplayerGame(id, playerXID, playerOID string) *Game {
	return &Game{
		ID:        id,
		Mode:      ModeMultiplayer,
		Board:     NewBoard(),
		Status:    StatusOngoing,
		Turn:      PlayerX,
		PlayerXID: playerXID,
		PlayerOID: playerOID,
	}
}

func ValidateLevel(level string) error {
	switch level {
	case LevelEasy, LevelHard:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownLevel, level)
	}
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Winner(); {
	// one player wins
	case winner.IsMark():
		that.Winner = winner.String()
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case that.Board.IsFull():
		that.Winner = ResultTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(mark Cell, move Move) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.ApplyMove(move, mark); err != nil {
		return err
	}

	that.Turn = opposite(mark)
	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsMultiplayer() bool {
	return that.Mode == ModeMultiplayer
}

func (that *Game) IsBotTurn() bool {
	return !that.IsMultiplayer() && !that.IsFinished() && that.Turn == that.BotMark
}

// MarkOf returns the mark held by playerID in a multiplayer game.
func (that *Game) MarkOf(playerID string) (Cell, error) {
	switch {
	case !that.IsMultiplayer() || playerID == "":
		return EmptyCell, apperror.ErrNotInGame
	case playerID == that.PlayerXID:
		return PlayerX, nil
	case playerID == that.PlayerOID:
		return PlayerO, nil
	default:
		return EmptyCell, apperror.ErrNotInGame
	}
}

// OpponentOf returns the id of the other player in a multiplayer game.
func (that *Game) OpponentOf(playerID string) (string, error) {
	mark, err := that.MarkOf(playerID)
	if err != nil {
		return "", err
	}

	if mark == PlayerX {
		return that.PlayerOID, nil
	}
	return that.PlayerXID, nil
}

func opposite(mark Cell) Cell {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
