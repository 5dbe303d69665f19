package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0

	// below any reachable score
	minScore = -200
	maxScore = 200
)

// Evaluate returns the exact value of board for the player about to move with mark.
// Search stops at a node as soon as its best score reaches bound.
// The board is mutated during search and restored before returning.
func Evaluate(board *entity.Board, mark entity.Cell, bound int) (int, error) {
	if !mark.IsMark() {
		return 0, fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	return negamax(board, mark, bound), nil
}

// FindOptimalMove returns the first move in row-major order with the highest score for mark.
// The board is restored before returning.
func FindOptimalMove(board *entity.Board, mark entity.Cell) (entity.Move, error) {
	if !mark.IsMark() {
		return entity.Move{}, fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	best := minScore
	bestMove := entity.Move{}
	found := false

	for r := range entity.BoardSize {
		for c := range entity.BoardSize {
			move := entity.Move{Row: r, Col: c}
			if board.Cell(move) != entity.EmptyCell {
				continue
			}

			board.SetCell(move, mark)
			score := -negamax(board, opponent(mark), -best)
			board.SetCell(move, entity.EmptyCell)

			if !found || score > best {
				best = score
				bestMove = move
				found = true
			}
		}
	}

	if !found {
		return entity.Move{}, apperror.ErrNoLegalMove
	}

	return bestMove, nil
}

func negamax(board *entity.Board, mark entity.Cell, bound int) int {
	if board.IsTerminal() {
		if board.Winner() == entity.EmptyCell {
			return DrawScore
		}
		// Marks alternate and every placement is followed by a terminal check,
		// so a finished line always belongs to the mark that just moved.
		return LossScore
	}

	best := minScore
	for r := range entity.BoardSize {
		for c := range entity.BoardSize {
			move := entity.Move{Row: r, Col: c}
			if board.Cell(move) != entity.EmptyCell {
				continue
			}

			if best >= bound {
				return best
			}

			board.SetCell(move, mark)
			score := -negamax(board, opponent(mark), -best)
			board.SetCell(move, entity.EmptyCell)

			if score > best {
				best = score
			}
		}
	}

	return best
}

func opponent(mark entity.Cell) entity.Cell {
	if mark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}
