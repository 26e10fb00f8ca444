package model

var (
	rookDirs   = []Position{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}}
	bishopDirs = []Position{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	knightDirs = []Position{{Row: 1, Col: 2}, {Row: -1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: -2}, {Row: 2, Col: 1}, {Row: -2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: -1}}
	kingDirs   = []Position{{Row: 0, Col: 1}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
)

// Generator produces pseudo-legal destinations: moves that respect piece
// geometry and occupancy but may leave the mover's king in check. Every
// target square is bounds-checked before the board is read.
type Generator struct {
	// Attacks, when set, is consulted for castling only: the king may not
	// castle out of, through or into an attacked square.
	Attacks AttackMap
}

// Moves returns the occupancy-only pseudo-legal destinations of piece.
func Moves(b *Board, piece Piece) []Position {
	return Generator{}.Moves(b, piece)
}

func (g Generator) Moves(b *Board, piece Piece) []Position {
	switch piece.Type {
	case Pawn:
		return pawnMoves(b, piece)
	case Knight:
		return stepMoves(b, piece, knightDirs)
	case Bishop:
		return rayMoves(b, piece, bishopDirs)
	case Rook:
		return rayMoves(b, piece, rookDirs)
	case Queen:
		return append(rayMoves(b, piece, bishopDirs), rayMoves(b, piece, rookDirs)...)
	case King:
		return append(stepMoves(b, piece, kingDirs), g.castleMoves(b, piece)...)
	default:
		return []Position{}
	}
}

func pawnForward(color Color) int {
	if color == White {
		return -1
	}
	return 1
}

func pawnMoves(b *Board, piece Piece) []Position {
	moves := []Position{}
	fwd := pawnForward(piece.Color)
	from := piece.Position
	one := Position{Row: from.Row + fwd, Col: from.Col}
	// a pawn on its last rank has nowhere to go
	if !one.Valid() {
		return moves
	}
	if b.At(one).IsEmpty() {
		moves = append(moves, one)
		two := Position{Row: from.Row + 2*fwd, Col: from.Col}
		if piece.FirstMove() && two.Valid() && b.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}
	for _, side := range []int{-1, 1} {
		target := Position{Row: one.Row, Col: from.Col + side}
		if target.Valid() && b.isEnemy(target, piece.Color) {
			moves = append(moves, target)
		}
	}
	return moves
}

func stepMoves(b *Board, piece Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := piece.Position.add(dir)
		if target.Valid() && (b.At(target).IsEmpty() || b.isEnemy(target, piece.Color)) {
			moves = append(moves, target)
		}
	}
	return moves
}

func rayMoves(b *Board, piece Piece, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := piece.Position.add(dir)
		for target.Valid() {
			if b.At(target).IsEmpty() {
				moves = append(moves, target)
			} else if b.isEnemy(target, piece.Color) {
				moves = append(moves, target)
				break
			} else {
				break
			}
			target = target.add(dir)
		}
	}
	return moves
}

// castleMoves offers the king's two-column step toward each unmoved rook in
// its corner when every square between them is empty.
func (g Generator) castleMoves(b *Board, king Piece) []Position {
	moves := []Position{}
	if king.HasMoved {
		return moves
	}
	for _, dir := range []int{-1, 1} {
		if g.canCastle(b, king, dir) {
			moves = append(moves, Position{Row: king.Position.Row, Col: king.Position.Col + 2*dir})
		}
	}
	return moves
}

func (g Generator) canCastle(b *Board, king Piece, dir int) bool {
	row := king.Position.Row
	rookCol := 0
	if dir > 0 {
		rookCol = boardSize - 1
	}
	landing := Position{Row: row, Col: king.Position.Col + 2*dir}
	if !landing.Valid() || (landing.Col-rookCol)*dir > 0 {
		return false
	}
	rook := b.At(Position{Row: row, Col: rookCol})
	if rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}
	for col := king.Position.Col + dir; col != rookCol; col += dir {
		if !b.At(Position{Row: row, Col: col}).IsEmpty() {
			return false
		}
	}
	if g.Attacks == nil {
		return true
	}
	enemy := king.Color.Opposite()
	for step := 0; step <= 2; step++ {
		if g.Attacks.IsAttacked(b, Position{Row: row, Col: king.Position.Col + step*dir}, enemy) {
			return false
		}
	}
	return true
}
