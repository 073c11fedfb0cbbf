package entity

import (
	"fmt"

	"github.com/rocketscienceinc/mousecat-backend/internal/apperror"
)

const (
	MinCell    = 0
	MaxCell    = 63
	BoardWidth = 8
	BoardSize  = BoardWidth * BoardWidth
)

// Delta is the signed row/column difference between two cells.
type Delta struct {
	Rows int
	Cols int
}

func IsValidCell(cell int) bool {
	return cell >= MinCell && cell <= MaxCell
}

func Row(cell int) int {
	return cell / BoardWidth
}

func Col(cell int) int {
	return cell % BoardWidth
}

// IsPlayableCell reports whether the cell is one of the dark squares,
// i.e. its row and column share the same parity.
func IsPlayableCell(cell int) bool {
	if !IsValidCell(cell) {
		return false
	}

	oddRow := Row(cell)%2 == 1
	oddCol := Col(cell)%2 == 1

	return oddRow == oddCol
}

func StepDelta(origin, target int) (Delta, error) {
	if !IsValidCell(origin) {
		return Delta{}, fmt.Errorf("%w: origin %d", apperror.ErrInvalidCell, origin)
	}

	if !IsValidCell(target) {
		return Delta{}, fmt.Errorf("%w: target %d", apperror.ErrInvalidCell, target)
	}

	return Delta{
		Rows: Row(target) - Row(origin),
		Cols: Col(target) - Col(origin),
	}, nil
}
