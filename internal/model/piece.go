package model

import "fmt"

type PieceType string

// Empty is the unit of a square with no piece on it; the zero Piece is empty.
const (
	Empty  PieceType = ""
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	}
	return ""
}

func (p PieceType) code() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return '-'
}

func pieceTypeFromCode(c byte) (PieceType, bool) {
	switch c {
	case 'k':
		return King, true
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	case 'p':
		return Pawn, true
	}
	return Empty, false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is the content of one square. A piece's Position always matches the
// board slot holding it; Board.Set keeps the two in step.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	HasMoved bool      `json:"hasMoved"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// FirstMove reports whether a pawn may still make its double advance.
func (p Piece) FirstMove() bool {
	return p.Type == Pawn && !p.HasMoved
}

// Token is the two character code of the square, e.g. "wp" or "--".
func (p Piece) Token() string {
	if p.IsEmpty() {
		return emptyToken
	}
	return string([]byte{p.Color[0], p.Type.code()})
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return fmt.Sprintf("%s %s at %s", p.Color, p.Type, p.Position)
}

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.Row >= 0 && p.Row < boardSize && p.Col >= 0 && p.Col < boardSize
}

func (p Position) String() string {
	if !p.Valid() {
		return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
	}
	return p.getSquareNotation()
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.Col+97, boardSize-p.Row)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.Col+97)
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}
