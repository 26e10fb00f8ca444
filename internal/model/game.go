package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
	writeMu     sync.Mutex // one writer per connection at a time
	sent        uint64     // version of the last state pushed, guarded by writeMu
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Game is one session: it owns its board and selection controller, so
// sessions never share state.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	selector    *Selector
	history     []Ply
	undo        []Snapshot
	players     Players
	version     uint64 // bumped on every pushed state, guarded by mu
	connections *GameConnections
}

// GameState is the read-only view handed to clients after every transition.
type GameState struct {
	Board          [][]string  `json:"board"`
	ToMove         Color       `json:"toMove"`
	PlayerWhite    bool        `json:"playerWhite"`
	IsCheck        bool        `json:"isCheck"`
	SelectedSquare *Position   `json:"selectedSquare"`
	LegalMoves     []Position  `json:"legalMoves"`
	MoveHistory    []Ply       `json:"moveHistory"`
	LastMove       *SimpleMove `json:"lastMove"`
	Players        Players     `json:"players"`
}

// NewGame starts a session on board, or on the standard layout when board is
// nil.
func NewGame(id string, board *Board, opts ...SelectorOption) *Game {
	if board == nil {
		board = NewBoard()
	}
	return &Game{
		ID:          id,
		board:       board,
		selector:    NewSelector(opts...),
		history:     make([]Ply, 0),
		undo:        make([]Snapshot, 0),
		connections: NewGameConnections(),
	}
}

// AddPlayer seats playerID, white first. Seated players get their color back.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.players.colorOf(playerID); ok {
		return color, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Color: White}
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Color: Black}
		return Black, nil
	}
	return "", ErrGameFull
}

// SetPlayers replaces the seats, used when a session is restored.
func (g *Game) SetPlayers(players Players) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.players = players
}

func (g *Game) Players() Players {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.players.colorOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() GameState {
	state := GameState{
		Board:       g.board.Tokens(),
		ToMove:      g.board.SideToMove(),
		PlayerWhite: g.board.PlayerWhite,
		IsCheck:     IsKingInCheck(g.board, g.board.SideToMove()),
		LegalMoves:  g.selector.Candidates(),
		MoveHistory: append(make([]Ply, 0, len(g.history)), g.history...),
		Players:     g.players,
	}
	if pos, ok := g.selector.Selected(); ok {
		state.SelectedSquare = &pos
	}
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return state
}

// Select feeds pos to the session's selection controller. The returned ply
// is non-nil when the pick committed a move.
func (g *Game) Select(pos Position) (GameState, *Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.selectLocked(pos)
}

// SelectAs is Select for a seated player; only the player whose color is to
// move may pick squares.
func (g *Game) SelectAs(playerID string, pos Position) (GameState, *Ply, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	color, ok := g.players.colorOf(playerID)
	if !ok {
		return GameState{}, nil, ErrNotInGame
	}
	if color != g.board.SideToMove() {
		return GameState{}, nil, ErrNotYourTurn
	}
	return g.selectLocked(pos)
}

func (g *Game) selectLocked(pos Position) (GameState, *Ply, error) {
	before := g.board.Snapshot()
	ply, err := g.selector.MakeSelection(pos, g.board)
	if err != nil {
		return GameState{}, nil, err
	}
	if ply != nil {
		g.undo = append(g.undo, before)
		g.history = append(g.history, *ply)
	}
	state := g.state()
	g.push(state)
	return state, ply, nil
}

// Undo restores the board as it was before the last committed move and
// clears any pending selection.
func (g *Game) Undo() (GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.undo)
	if n == 0 {
		return GameState{}, ErrNothingToUndo
	}
	board, err := g.undo[n-1].Restore()
	if err != nil {
		return GameState{}, fmt.Errorf("undo: %w", err)
	}
	g.board = board
	g.undo = g.undo[:n-1]
	g.history = g.history[:len(g.history)-1]
	g.selector.Reset()

	state := g.state()
	g.push(state)
	return state, nil
}

// Snapshot captures the current board for persistence.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.Snapshot()
}

// RegisterConnection attaches conn for playerID. A second connection for a
// player who is already connected is refused with ErrDuplicateConnection and
// the first one keeps running.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) error {
	g.mu.Lock()
	_, seated := g.players.colorOf(playerID)
	isAuthorized := seated || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return fmt.Errorf("connect %s: %w", playerID, ErrNotInGame)
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		return fmt.Errorf("connect %s: %w", playerID, ErrDuplicateConnection)
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Printf("game %s: registered connection for player %s", g.ID, playerID)

	g.mu.Lock()
	g.push(g.state())
	g.mu.Unlock()
	return nil
}

// UnregisterConnection detaches conn. A connection that has already been
// replaced or refused leaves the registered one alone.
func (g *Game) UnregisterConnection(playerID string, conn *websocket.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Printf("game %s: unregistering connection for player %s", g.ID, playerID)
		delete(g.connections.connections, playerID)
	}
}

// push stamps state with the next version and sends it in the background.
// Callers hold g.mu.
func (g *Game) push(state GameState) {
	g.version++
	go g.broadcastState(state, g.version)
}

// SendError delivers an error message to one connected player. Writes share
// the broadcast lock, so a reply never interleaves with a state push.
func (g *Game) SendError(playerID string, cause error) error {
	payload, err := json.Marshal(ws.ErrorPayload{Error: cause.Error()})
	if err != nil {
		return err
	}

	g.connections.mu.RLock()
	conn, ok := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !ok {
		return fmt.Errorf("send to %s: %w", playerID, ErrNotInGame)
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(ws.Message{Type: ws.MessageTypeError, Payload: payload})
}

// broadcastState sends state to every connection unless a newer version has
// already gone out. It reports whether the state was sent.
func (g *Game) broadcastState(state GameState, version uint64) bool {
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("game %s: marshal state: %v", g.ID, err)
		return false
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	if version <= g.connections.sent {
		return false
	}
	g.connections.sent = version

	g.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Printf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.UnregisterConnection(playerID, conn)
		}
	}
	return true
}
