package model

import "fmt"

// Snapshot is the complete serializable state of a board: contents, side to
// move and every piece's move-history flag.
type Snapshot struct {
	Squares     [][]string `json:"squares"`
	Moved       [][]bool   `json:"moved"`
	WhiteToMove bool       `json:"whiteToMove"`
	PlayerWhite bool       `json:"playerWhite"`
}

func (b *Board) Snapshot() Snapshot {
	moved := make([][]bool, boardSize)
	for row := range moved {
		moved[row] = make([]bool, boardSize)
		for col := range moved[row] {
			moved[row][col] = b.squares[row][col].HasMoved
		}
	}
	return Snapshot{
		Squares:     b.Tokens(),
		Moved:       moved,
		WhiteToMove: b.whiteToMove,
		PlayerWhite: b.PlayerWhite,
	}
}

// Restore rebuilds the board a snapshot was taken from.
func (s Snapshot) Restore() (*Board, error) {
	board, err := NewBoardFromArray(s.Squares, s.WhiteToMove, s.PlayerWhite)
	if err != nil {
		return nil, err
	}
	if len(s.Moved) != boardSize {
		return nil, fmt.Errorf("moved flags: %w", ErrInvalidLayout)
	}
	for row, flags := range s.Moved {
		if len(flags) != boardSize {
			return nil, fmt.Errorf("moved flags row %d: %w", row, ErrInvalidLayout)
		}
		for col, moved := range flags {
			if piece := &board.squares[row][col]; !piece.IsEmpty() {
				piece.HasMoved = moved
			}
		}
	}
	return board, nil
}
