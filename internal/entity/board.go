package entity

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

const BoardSize = 3

// Cell is the state of a single board cell. The zero value is EmptyCell.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

const (
	SymbolEmpty = '.'
	SymbolX     = 'X'
	SymbolO     = 'O'
)

// WinCombos lists every line of three cells as (row, col) pairs.
var WinCombos = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// ParseCell converts an external symbol into a Cell.
func ParseCell(symbol rune) (Cell, error) {
	switch symbol {
	case SymbolEmpty:
		return EmptyCell, nil
	case SymbolX:
		return PlayerX, nil
	case SymbolO:
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, symbol)
	}
}

// ParseMark converts an external symbol into a player mark. Empty is rejected.
func ParseMark(symbol string) (Cell, error) {
	runes := []rune(symbol)
	if len(runes) != 1 {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, symbol)
	}

	cell, err := ParseCell(runes[0])
	if err != nil {
		return EmptyCell, err
	}

	if cell == EmptyCell {
		return EmptyCell, fmt.Errorf("%w: empty cell can't move", apperror.ErrInvalidMark)
	}

	return cell, nil
}

func (that Cell) Symbol() rune {
	switch that {
	case PlayerX:
		return SymbolX
	case PlayerO:
		return SymbolO
	default:
		return SymbolEmpty
	}
}

func (that Cell) String() string {
	return string(that.Symbol())
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	runes := []rune(string(text))
	if len(runes) != 1 {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, text)
	}

	cell, err := ParseCell(runes[0])
	if err != nil {
		return err
	}

	*that = cell

	return nil
}

func (that Cell) IsMark() bool {
	return that == PlayerX || that == PlayerO
}

// Opposite returns the other player's mark.
func (that Cell) Opposite() (Cell, error) {
	switch that {
	case PlayerX:
		return PlayerO, nil
	case PlayerO:
		return PlayerX, nil
	default:
		return EmptyCell, fmt.Errorf("%w: empty cell has no opposite", apperror.ErrInvalidMark)
	}
}

// Move addresses a single cell, 0-based.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a fixed 3x3 grid addressed as [row][col].
type Board [BoardSize][BoardSize]Cell

func NewBoard() Board {
	return Board{}
}

// ParseBoard reads nine symbols in row-major order. Rows may be separated by '/' or newlines.
func ParseBoard(s string) (Board, error) {
	var board Board

	i := 0
	for _, symbol := range s {
		if symbol == '/' || symbol == '\n' {
			continue
		}

		if i >= BoardSize*BoardSize {
			return Board{}, fmt.Errorf("%w: board has more than %d cells", apperror.ErrInvalidSymbol, BoardSize*BoardSize)
		}

		cell, err := ParseCell(symbol)
		if err != nil {
			return Board{}, err
		}

		board[i/BoardSize][i%BoardSize] = cell
		i++
	}

	if i != BoardSize*BoardSize {
		return Board{}, fmt.Errorf("%w: board has %d cells", apperror.ErrInvalidSymbol, i)
	}

	return board, nil
}

// ParseBoardRows reads exactly three rows of three symbols each.
func ParseBoardRows(rows []string) (Board, error) {
	if len(rows) != BoardSize {
		return Board{}, fmt.Errorf("%w: board has %d rows", apperror.ErrInvalidSymbol, len(rows))
	}

	var board Board
	for r, row := range rows {
		symbols := []rune(row)
		if len(symbols) != BoardSize {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", apperror.ErrInvalidSymbol, r, len(symbols))
		}

		for c, symbol := range symbols {
			cell, err := ParseCell(symbol)
			if err != nil {
				return Board{}, fmt.Errorf("row %d: %w", r, err)
			}
			board[r][c] = cell
		}
	}

	return board, nil
}

func (that *Board) Rows() []string {
	rows := make([]string, BoardSize)
	for r := range that {
		var sb strings.Builder
		for _, cell := range that[r] {
			sb.WriteRune(cell.Symbol())
		}
		rows[r] = sb.String()
	}
	return rows
}

func (that *Board) String() string {
	return strings.Join(that.Rows(), "/")
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board rows: %w", err)
	}

	board, err := ParseBoardRows(rows)
	if err != nil {
		return err
	}

	*that = board

	return nil
}

func (that *Board) Cell(move Move) Cell {
	return that[move.Row][move.Col]
}

// IsValidMove reports whether move targets an empty cell. Out-of-range coordinates are an error.
func (that *Board) IsValidMove(move Move) (bool, error) {
	if !move.InRange() {
		return false, fmt.Errorf("%w: %s", apperror.ErrOutOfRange, move)
	}

	return that[move.Row][move.Col] == EmptyCell, nil
}

// ApplyMove places mark after validating the mark and the target cell.
func (that *Board) ApplyMove(move Move, mark Cell) error {
	if !mark.IsMark() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidMark, mark)
	}

	valid, err := that.IsValidMove(move)
	if err != nil {
		return err
	}

	if !valid {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, move)
	}

	that[move.Row][move.Col] = mark

	return nil
}

// SetCell writes cell without any validation, including EmptyCell.
func (that *Board) SetCell(move Move, cell Cell) {
	that[move.Row][move.Col] = cell
}

// Winner returns the mark owning a full line, or EmptyCell. X lines are checked first.
func (that *Board) Winner() Cell {
	for _, mark := range [2]Cell{PlayerX, PlayerO} {
		for _, combo := range WinCombos {
			if that.Cell(combo[0]) == mark && that.Cell(combo[1]) == mark && that.Cell(combo[2]) == mark {
				return mark
			}
		}
	}

	return EmptyCell
}

func (that *Board) IsFull() bool {
	for r := range that {
		for _, cell := range that[r] {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// IsTerminal is true when somebody has won or no empty cell remains.
func (that *Board) IsTerminal() bool {
	return that.Winner() != EmptyCell || that.IsFull()
}

// EmptyCells lists empty cells in row-major order.
func (that *Board) EmptyCells() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for r := range that {
		for c, cell := range that[r] {
			if cell == EmptyCell {
				moves = append(moves, Move{Row: r, Col: c})
			}
		}
	}

	return moves
}

func (that *Board) CountMarks() (int, int) {
	var x, o int
	for r := range that {
		for _, cell := range that[r] {
			switch cell {
			case PlayerX:
				x++
			case PlayerO:
				o++
			}
		}
	}

	return x, o
}

// NextMark derives whose turn it is, X always moving first.
func (that *Board) NextMark() (Cell, error) {
	x, o := that.CountMarks()

	switch x - o {
	case 0:
		return PlayerX, nil
	case 1:
		return PlayerO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %d X and %d O", apperror.ErrInvalidPosition, x, o)
	}
}
