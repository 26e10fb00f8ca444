package model

import (
	"testing"

	"github.com/benbeisheim/clickchess-backend/internal/testutil"
	"github.com/gofiber/websocket/v2"
)

func TestGameSelectFlow(t *testing.T) {
	g := NewGame("g1", nil)

	state, ply, err := g.Select(square("e2"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ply == nil)
	testutil.AssertEqual(t, state.SelectedSquare, &Position{Row: 6, Col: 4})
	testutil.AssertEqual(t, state.LegalMoves, []Position{square("e3"), square("e4")})
	testutil.AssertTrue(t, state.LastMove == nil)

	state, ply, err = g.Select(square("e4"))
	testutil.AssertNoError(t, err)
	if ply == nil {
		t.Fatal("expected a committed ply")
	}
	testutil.AssertEqual(t, state.ToMove, Black)
	testutil.AssertTrue(t, state.SelectedSquare == nil)
	testutil.AssertEqual(t, state.LegalMoves, []Position{})
	testutil.AssertEqual(t, state.LastMove, &SimpleMove{From: square("e2"), To: square("e4")})
	testutil.AssertEqual(t, len(state.MoveHistory), 1)
	testutil.AssertEqual(t, state.MoveHistory[0].Notation, "e4")
	testutil.AssertEqual(t, state.Board[4][4], "wp")
}

func TestGameSelectOutOfRange(t *testing.T) {
	g := NewGame("g1", nil)
	_, _, err := g.Select(pos(9, 9))
	testutil.AssertErrorIs(t, err, ErrOutOfRange)
}

func TestGameUndo(t *testing.T) {
	g := NewGame("g1", nil)
	_, err := g.Undo()
	testutil.AssertErrorIs(t, err, ErrNothingToUndo)

	g.Select(square("e1"))
	for _, mv := range [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}} {
		g.Select(square(mv[0]))
		g.Select(square(mv[1]))
	}
	g.Select(square("b8")) // pending selection is dropped by undo

	state, err := g.Undo()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, state.ToMove, White)
	testutil.AssertEqual(t, len(state.MoveHistory), 2)
	testutil.AssertTrue(t, state.SelectedSquare == nil)
	testutil.AssertEqual(t, state.Board[7][6], "wn")
	testutil.AssertEqual(t, state.LastMove, &SimpleMove{From: square("e7"), To: square("e5")})

	g.Undo()
	state, err = g.Undo()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, state.Board, NewBoard().Tokens())
	testutil.AssertTrue(t, state.LastMove == nil)

	_, err = g.Undo()
	testutil.AssertErrorIs(t, err, ErrNothingToUndo)
}

func TestGameUndoRestoresCastlingRights(t *testing.T) {
	g := NewGame("g1", whiteCastle(t))
	g.Select(square("e1"))
	g.Select(square("f1"))
	g.Undo()

	state, _, err := g.Select(square("e1"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sorted(state.LegalMoves), []Position{square("c1"), square("d1"), square("f1"), square("g1")})
}

func TestGameReportsCheck(t *testing.T) {
	g := NewGame("g1", nil)
	for _, mv := range [][2]string{{"e2", "e4"}, {"f7", "f6"}, {"d1", "h5"}} {
		g.Select(square(mv[0]))
		g.Select(square(mv[1]))
	}
	state := g.GetState()
	testutil.AssertEqual(t, state.ToMove, Black)
	testutil.AssertTrue(t, state.IsCheck, "Qh5 checks e8")
}

func TestGameSeats(t *testing.T) {
	g := NewGame("g1", nil)

	color, err := g.AddPlayer("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, color, White)

	color, err = g.AddPlayer("bob")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, color, Black)

	color, err = g.AddPlayer("alice")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, color, White, "rejoin keeps the seat")

	_, err = g.AddPlayer("carol")
	testutil.AssertErrorIs(t, err, ErrGameFull)

	testutil.AssertTrue(t, g.IsPlayerInGame("bob"))
	testutil.AssertTrue(t, !g.IsPlayerInGame("carol"))
	testutil.AssertTrue(t, !g.IsPlayerInGame(""))
	testutil.AssertEqual(t, g.Players().Black, ClientPlayer{ID: "bob", Color: Black})
}

func TestGameSelectAs(t *testing.T) {
	g := NewGame("g1", nil)
	g.AddPlayer("alice")
	g.AddPlayer("bob")

	_, _, err := g.SelectAs("carol", square("e2"))
	testutil.AssertErrorIs(t, err, ErrNotInGame)

	_, _, err = g.SelectAs("bob", square("e7"))
	testutil.AssertErrorIs(t, err, ErrNotYourTurn)

	g.SelectAs("alice", square("e2"))
	_, ply, err := g.SelectAs("alice", square("e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, ply != nil)

	_, _, err = g.SelectAs("alice", square("d2"))
	testutil.AssertErrorIs(t, err, ErrNotYourTurn)

	state, _, err := g.SelectAs("bob", square("e7"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, state.LegalMoves, []Position{square("e6"), square("e5")})
}

func TestGameSnapshotAndRestore(t *testing.T) {
	g := NewGame("g1", nil)
	g.Select(square("g1"))
	g.Select(square("f3"))

	board, err := g.Snapshot().Restore()
	testutil.AssertNoError(t, err)

	restored := NewGame("g1", board)
	testutil.AssertEqual(t, restored.GetState().Board, g.GetState().Board)
	testutil.AssertEqual(t, restored.GetState().ToMove, Black)
}

func TestGamesAreIndependent(t *testing.T) {
	a := NewGame("a", nil)
	b := NewGame("b", nil)
	a.Select(square("e2"))
	a.Select(square("e4"))

	testutil.AssertEqual(t, b.GetState().Board, NewBoard().Tokens())
	testutil.AssertEqual(t, b.GetState().ToMove, White)
}

func TestSendErrorNeedsConnection(t *testing.T) {
	g := NewGame("g1", nil)
	g.AddPlayer("alice")
	err := g.SendError("alice", ErrNotYourTurn)
	testutil.AssertErrorIs(t, err, ErrNotInGame)
}

func TestUnregisterConnectionKeepsNewerSocket(t *testing.T) {
	g := NewGame("g1", nil)
	healthy, refused := &websocket.Conn{}, &websocket.Conn{}
	g.connections.connections["alice"] = healthy

	g.UnregisterConnection("alice", refused)
	testutil.AssertTrue(t, g.connections.connections["alice"] == healthy, "refused socket must not evict the live one")

	g.UnregisterConnection("alice", healthy)
	_, still := g.connections.connections["alice"]
	testutil.AssertTrue(t, !still)
}

func TestBroadcastSkipsStaleStates(t *testing.T) {
	g := NewGame("g1", nil)
	armed := g.GetState()

	testutil.AssertTrue(t, g.broadcastState(armed, 2), "first state goes out")
	testutil.AssertTrue(t, !g.broadcastState(armed, 1), "older state is dropped")
	testutil.AssertTrue(t, !g.broadcastState(armed, 2), "same version is not resent")
	testutil.AssertTrue(t, g.broadcastState(armed, 3))
}

func TestTransitionsBumpVersion(t *testing.T) {
	g := NewGame("g1", nil)
	g.Select(square("e2"))
	g.Select(square("e4"))
	g.Undo()

	g.mu.Lock()
	defer g.mu.Unlock()
	testutil.AssertEqual(t, g.version, uint64(3))
}
