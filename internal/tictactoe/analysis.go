package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

type ScoredMove struct {
	entity.Move
	Score int `json:"score"`
}

// ScoreMoves returns the exact score of every legal move for mark, in row-major order.
func ScoreMoves(board *entity.Board, mark entity.Cell) ([]ScoredMove, error) {
	if !mark.IsMark() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	moves := board.EmptyCells()
	if len(moves) == 0 {
		return nil, apperror.ErrNoLegalMove
	}

	scored := make([]ScoredMove, 0, len(moves))
	for _, move := range moves {
		board.SetCell(move, mark)
		score := -negamax(board, opponent(mark), maxScore)
		board.SetCell(move, entity.EmptyCell)

		scored = append(scored, ScoredMove{Move: move, Score: score})
	}

	return scored, nil
}

// RandomMove picks any empty cell uniformly.
func RandomMove(board *entity.Board, rnd *rand.Rand) (entity.Move, error) {
	moves := board.EmptyCells()
	if len(moves) == 0 {
		return entity.Move{}, apperror.ErrNoLegalMove
	}

	return moves[rnd.Intn(len(moves))], nil
}
