package model

import (
	"fmt"
	"strings"
)

const (
	boardSize  = 8
	emptyToken = "--"
)

var backRank = [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is the 8x8 grid plus the side to move. Row 0 is black's back rank,
// so white pawns advance toward decreasing rows.
type Board struct {
	squares     [boardSize][boardSize]Piece
	whiteToMove bool

	// PlayerWhite is the viewing orientation; only presentation reads it.
	PlayerWhite bool
}

// NewBoard returns the standard starting position with white to move.
func NewBoard() *Board {
	board := &Board{whiteToMove: true, PlayerWhite: true}
	for col := 0; col < boardSize; col++ {
		board.Set(Position{Row: 0, Col: col}, Piece{Type: backRank[col], Color: Black})
		board.Set(Position{Row: 1, Col: col}, Piece{Type: Pawn, Color: Black})
		board.Set(Position{Row: 6, Col: col}, Piece{Type: Pawn, Color: White})
		board.Set(Position{Row: 7, Col: col}, Piece{Type: backRank[col], Color: White})
	}
	return board
}

// NewBoardFromArray builds a board from two character tokens ("wp", "bk",
// "--"). Move history is derived from placement: pawns on their home rank,
// kings on their original square and rooks in their own back rank corners
// count as unmoved, everything else as moved.
func NewBoardFromArray(array [][]string, whiteToMove, playerWhite bool) (*Board, error) {
	if len(array) != boardSize {
		return nil, fmt.Errorf("%d rows: %w", len(array), ErrInvalidLayout)
	}
	board := &Board{whiteToMove: whiteToMove, PlayerWhite: playerWhite}
	for row, tokens := range array {
		if len(tokens) != boardSize {
			return nil, fmt.Errorf("row %d has %d squares: %w", row, len(tokens), ErrInvalidLayout)
		}
		for col, token := range tokens {
			piece, err := parseToken(token)
			if err != nil {
				return nil, fmt.Errorf("square (%d,%d): %w", row, col, err)
			}
			pos := Position{Row: row, Col: col}
			if !piece.IsEmpty() {
				piece.HasMoved = !onOriginalSquare(piece.Type, piece.Color, pos)
			}
			board.Set(pos, piece)
		}
	}
	return board, nil
}

func parseToken(token string) (Piece, error) {
	if token == emptyToken {
		return Piece{}, nil
	}
	if len(token) != 2 {
		return Piece{}, fmt.Errorf("%q: %w", token, ErrInvalidToken)
	}
	var color Color
	switch token[0] {
	case 'w':
		color = White
	case 'b':
		color = Black
	default:
		return Piece{}, fmt.Errorf("%q: %w", token, ErrInvalidToken)
	}
	pieceType, ok := pieceTypeFromCode(token[1])
	if !ok {
		return Piece{}, fmt.Errorf("%q: %w", token, ErrInvalidToken)
	}
	return Piece{Type: pieceType, Color: color}, nil
}

func homeRow(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

func pawnRow(color Color) int {
	if color == White {
		return 6
	}
	return 1
}

func onOriginalSquare(pieceType PieceType, color Color, pos Position) bool {
	switch pieceType {
	case Pawn:
		return pos.Row == pawnRow(color)
	case King:
		return pos.Row == homeRow(color) && pos.Col == 4
	case Rook:
		return pos.Row == homeRow(color) && (pos.Col == 0 || pos.Col == boardSize-1)
	}
	return false
}

// Get returns the content of pos, or ErrOutOfRange when pos is off the board.
func (b *Board) Get(pos Position) (Piece, error) {
	if !pos.Valid() {
		return Piece{}, fmt.Errorf("get %v: %w", pos, ErrOutOfRange)
	}
	return b.squares[pos.Row][pos.Col], nil
}

// At is Get for callers that have already bounds-checked pos. It panics on an
// off-board position.
func (b *Board) At(pos Position) Piece {
	piece, err := b.Get(pos)
	if err != nil {
		panic(err)
	}
	return piece
}

// Set replaces the content of pos and stamps the piece with its new position.
func (b *Board) Set(pos Position, piece Piece) {
	if !pos.Valid() {
		panic(fmt.Errorf("set %v: %w", pos, ErrOutOfRange))
	}
	if piece.IsEmpty() {
		piece = Piece{}
	} else {
		piece.Position = pos
	}
	b.squares[pos.Row][pos.Col] = piece
}

func (b *Board) SideToMove() Color {
	if b.whiteToMove {
		return White
	}
	return Black
}

func (b *Board) WhiteToMove() bool {
	return b.whiteToMove
}

func (b *Board) FlipTurn() {
	b.whiteToMove = !b.whiteToMove
}

// isEnemy reports whether an on-board pos holds a piece not of color.
func (b *Board) isEnemy(pos Position, color Color) bool {
	piece := b.squares[pos.Row][pos.Col]
	return !piece.IsEmpty() && piece.Color != color
}

// Pieces returns every piece of color in row-major order.
func (b *Board) Pieces(color Color) []Piece {
	pieces := []Piece{}
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if piece := b.squares[row][col]; !piece.IsEmpty() && piece.Color == color {
				pieces = append(pieces, piece)
			}
		}
	}
	return pieces
}

// Tokens returns the board as the token array NewBoardFromArray accepts.
func (b *Board) Tokens() [][]string {
	tokens := make([][]string, boardSize)
	for row := range tokens {
		tokens[row] = make([]string, boardSize)
		for col := range tokens[row] {
			tokens[row][col] = b.squares[row][col].Token()
		}
	}
	return tokens
}

func (b *Board) String() string {
	var sb strings.Builder
	for _, row := range b.Tokens() {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
