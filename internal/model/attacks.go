package model

// AttackMap answers whether a square is attacked by a side. The move
// generator consults it only to decide castling legality.
type AttackMap interface {
	IsAttacked(b *Board, pos Position, by Color) bool
}

// SquareAttacks scans outward from the target square for attackers.
type SquareAttacks struct{}

func (SquareAttacks) IsAttacked(b *Board, pos Position, by Color) bool {
	return isSquareAttacked(b, by, pos)
}

func isSquareAttacked(b *Board, attackingColor Color, pos Position) bool {
	if rayAttacked(b, attackingColor, pos, rookDirs, Rook) || rayAttacked(b, attackingColor, pos, bishopDirs, Bishop) {
		return true
	}
	if stepAttacked(b, attackingColor, pos, knightDirs, Knight) || stepAttacked(b, attackingColor, pos, kingDirs, King) {
		return true
	}
	// an attacking pawn sits one row behind the target, from its own point of view
	behind := -pawnForward(attackingColor)
	for _, side := range []int{-1, 1} {
		from := Position{Row: pos.Row + behind, Col: pos.Col + side}
		if !from.Valid() {
			continue
		}
		if piece := b.At(from); piece.Type == Pawn && piece.Color == attackingColor {
			return true
		}
	}
	return false
}

func rayAttacked(b *Board, attackingColor Color, pos Position, dirs []Position, slider PieceType) bool {
	for _, dir := range dirs {
		target := pos.add(dir)
		for target.Valid() {
			piece := b.At(target)
			if !piece.IsEmpty() {
				if piece.Color == attackingColor && (piece.Type == slider || piece.Type == Queen) {
					return true
				}
				break
			}
			target = target.add(dir)
		}
	}
	return false
}

func stepAttacked(b *Board, attackingColor Color, pos Position, dirs []Position, pieceType PieceType) bool {
	for _, dir := range dirs {
		target := pos.add(dir)
		if !target.Valid() {
			continue
		}
		if piece := b.At(target); piece.Type == pieceType && piece.Color == attackingColor {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether color's king is attacked. A board without
// that king is never in check.
func IsKingInCheck(b *Board, color Color) bool {
	for _, piece := range b.Pieces(color) {
		if piece.Type == King {
			return isSquareAttacked(b, color.Opposite(), piece.Position)
		}
	}
	return false
}
