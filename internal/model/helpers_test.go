package model

import (
	"sort"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

var emptyRows = [][]string{
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
	{"--", "--", "--", "--", "--", "--", "--", "--"},
}

func mustBoard(t *testing.T, rows [][]string, whiteToMove bool) *Board {
	t.Helper()
	board, err := NewBoardFromArray(rows, whiteToMove, true)
	if err != nil {
		t.Fatalf("NewBoardFromArray: %v", err)
	}
	return board
}

// boardWith places tokens on an otherwise empty board.
func boardWith(t *testing.T, whiteToMove bool, placements map[Position]string) *Board {
	t.Helper()
	rows := make([][]string, len(emptyRows))
	for i := range emptyRows {
		rows[i] = append([]string(nil), emptyRows[i]...)
	}
	for pos, token := range placements {
		rows[pos.Row][pos.Col] = token
	}
	return mustBoard(t, rows, whiteToMove)
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// square parses algebraic squares like "e4".
func square(name string) Position {
	return Position{Row: boardSize - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func sorted(moves []Position) []Position {
	out := append([]Position{}, moves...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func dump(b *Board) string {
	return b.String() + spew.Sdump(b.SideToMove())
}
