package model

import "fmt"

// MoveRequest is a validated (source, destination, board) triple handed from
// the selection controller to the executor.
type MoveRequest struct {
	From  Position
	To    Position
	Board *Board
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// Ply records one executed half-move.
type Ply struct {
	Piece          Piece           `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceType       `json:"promotion"`
	Notation       string          `json:"notation"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// MoveExecutor applies a move the controller has already validated.
type MoveExecutor interface {
	Execute(req MoveRequest) Ply
}

type ExecutorFunc func(req MoveRequest) Ply

func (f ExecutorFunc) Execute(req MoveRequest) Ply {
	return f(req)
}

// ExecuteMove mutates the board for a trusted request: it captures whatever
// stands on the destination, relocates the piece, promotes a pawn reaching
// the far rank to a queen, brings the rook across on a castle, marks the
// piece as moved and hands the turn to the other side. Legality is not
// re-derived here.
func ExecuteMove(req MoveRequest) Ply {
	b := req.Board
	piece := b.At(req.From)
	ply := Ply{
		Piece: piece,
		From:  req.From,
		To:    req.To,
	}
	if target := b.At(req.To); !target.IsEmpty() {
		ply.CapturedPiece = &target
	}

	b.Set(req.From, Piece{})
	moved := piece
	moved.HasMoved = true
	if moved.Type == Pawn && req.To.Row == homeRow(moved.Color.Opposite()) {
		moved.Type = Queen
		ply.Promotion = Queen
	}
	b.Set(req.To, moved)

	if piece.Type == King && abs(req.To.Col-req.From.Col) == 2 {
		ply.CastleRookMove = castleRook(b, req)
	}

	b.FlipTurn()
	ply.Notation = notation(ply)
	return ply
}

func castleRook(b *Board, req MoveRequest) *CastleRookMove {
	dir := 1
	rookCol := boardSize - 1
	if req.To.Col < req.From.Col {
		dir = -1
		rookCol = 0
	}
	rookMove := &CastleRookMove{
		From: Position{Row: req.From.Row, Col: rookCol},
		To:   Position{Row: req.From.Row, Col: req.From.Col + dir},
	}
	rook := b.At(rookMove.From)
	rook.HasMoved = true
	b.Set(rookMove.From, Piece{})
	b.Set(rookMove.To, rook)
	return rookMove
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// notation renders short algebraic notation without check marks or
// disambiguation.
func notation(ply Ply) string {
	if ply.CastleRookMove != nil {
		if ply.To.Col < ply.From.Col {
			return "O-O-O"
		}
		return "O-O"
	}
	prefix := ply.Piece.Type.getPieceNotation()
	if ply.Piece.Type == Pawn && ply.CapturedPiece != nil {
		prefix = ply.From.getFileNotation()
	}
	capture := ""
	if ply.CapturedPiece != nil {
		capture = "x"
	}
	suffix := ""
	if ply.Promotion != Empty {
		suffix = "=" + ply.Promotion.getPieceNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, capture, ply.To.getSquareNotation(), suffix)
}
