package model

import (
	"testing"

	"github.com/benbeisheim/clickchess-backend/internal/testutil"
)

func TestSquareAttacks(t *testing.T) {
	b := boardWith(t, true, map[Position]string{
		square("d4"): "wp",
		square("e5"): "bp",
		square("a8"): "br",
		square("a4"): "wn",
		square("h3"): "bb",
		square("g2"): "wk",
	})
	var attacks AttackMap = SquareAttacks{}
	tests := []struct {
		name string
		at   string
		by   Color
		want bool
	}{
		{"white pawn hits diagonally forward", "e5", White, true},
		{"white pawn hits c5", "c5", White, true},
		{"white pawn does not hit backward", "e3", White, false},
		{"white pawn does not hit ahead", "d5", White, false},
		{"black pawn hits d4", "d4", Black, true},
		{"black pawn hits f4", "f4", Black, true},
		{"black pawn does not hit backward", "d6", Black, false},
		{"rook along rank", "h8", Black, true},
		{"rook blocked by knight", "a3", Black, false},
		{"rook reaches blocker", "a4", Black, true},
		{"bishop blocked by king", "f1", Black, false},
		{"bishop reaches king", "g2", Black, true},
		{"knight", "b6", White, true},
		{"king adjacent", "h3", White, true},
		{"king not two away", "g4", White, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := attacks.IsAttacked(b, square(tt.at), tt.by); got != tt.want {
				t.Errorf("IsAttacked(%s, %s) = %v; want %v\n%s", tt.at, tt.by, got, tt.want, dump(b))
			}
		})
	}
}

func TestIsKingInCheck(t *testing.T) {
	b := boardWith(t, true, map[Position]string{
		square("e1"): "wk",
		square("e8"): "bk",
		square("e5"): "bq",
	})
	testutil.AssertTrue(t, IsKingInCheck(b, White), "queen on the open file")
	testutil.AssertTrue(t, !IsKingInCheck(b, Black))

	b.Set(square("e2"), Piece{Type: Pawn, Color: White, HasMoved: true})
	testutil.AssertTrue(t, !IsKingInCheck(b, White), "file blocked")

	testutil.AssertTrue(t, !IsKingInCheck(boardWith(t, true, nil), White), "no king, no check")
}

func TestStrictCastling(t *testing.T) {
	strict := Generator{Attacks: SquareAttacks{}}
	tests := []struct {
		name   string
		attack string
		want   []Position
	}{
		{"quiet", "", []Position{square("c1"), square("d1"), square("f1"), square("g1")}},
		{"king in check", "e4", []Position{square("d1"), square("f1")}},
		{"passes through f1", "f4", []Position{square("c1"), square("d1"), square("f1")}},
		{"lands on g1", "g4", []Position{square("c1"), square("d1"), square("f1")}},
		{"b1 attacked still castles long", "b4", []Position{square("c1"), square("d1"), square("f1"), square("g1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := map[Position]string{
				square("e1"): "wk",
				square("a1"): "wr",
				square("h1"): "wr",
				square("h8"): "bk",
			}
			if tt.attack != "" {
				rows[square(tt.attack)] = "br"
			}
			b := boardWith(t, true, rows)
			king := b.At(square("e1"))
			want := sorted(append(tt.want, square("d2"), square("e2"), square("f2")))
			testutil.AssertEqual(t, sorted(strict.Moves(b, king)), want)
			if tt.attack == "" {
				return
			}
			// the plain generator ignores attacks
			testutil.AssertEqual(t, len(Moves(b, king)), 7)
		})
	}
}
