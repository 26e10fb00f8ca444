package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/store"
	"github.com/gofiber/websocket/v2"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Persister keeps game records across restarts. *store.Store satisfies it.
type Persister interface {
	Save(ctx context.Context, gameID string, rec store.Record) error
	Load(ctx context.Context, gameID string) (store.Record, error)
}

// GameManager is the registry of live sessions. Each game owns its own board
// and selection controller.
type GameManager struct {
	games    map[string]*model.Game
	store    Persister
	selector []model.SelectorOption
	mu       sync.RWMutex
}

// NewGameManager builds a manager; store may be nil to keep games in memory
// only.
func NewGameManager(persister Persister, opts ...model.SelectorOption) *GameManager {
	return &GameManager{
		games:    make(map[string]*model.Game),
		store:    persister,
		selector: opts,
	}
}

func (gm *GameManager) CreateGame(ctx context.Context, gameID string, board *model.Board) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("create %s: %w", gameID, ErrGameExists)
	}
	game := model.NewGame(gameID, board, gm.selector...)
	gm.games[gameID] = game
	log.Printf("game %s created", gameID)
	gm.persist(ctx, game)
	return nil
}

// GetGame returns a live game, restoring it from the store when it is not in
// memory.
func (gm *GameManager) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if exists {
		return game, nil
	}
	if gm.store == nil {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}

	rec, err := gm.store.Load(ctx, gameID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	if err != nil {
		return nil, err
	}
	board, err := rec.Snapshot.Restore()
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", gameID, err)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()
	// another request may have restored it meanwhile
	if game, exists := gm.games[gameID]; exists {
		return game, nil
	}
	game = model.NewGame(gameID, board, gm.selector...)
	game.SetPlayers(rec.Players)
	gm.games[gameID] = game
	log.Printf("game %s restored from store", gameID)
	return game, nil
}

func (gm *GameManager) AddPlayerToGame(ctx context.Context, gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return "", err
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", err
	}
	log.Printf("game %s: player %s seated as %s", gameID, playerID, color)
	gm.persist(ctx, game)
	return color, nil
}

func (gm *GameManager) GetGameState(ctx context.Context, gameID string) (model.GameState, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// Select forwards a square pick from a seated player and persists the game
// when the pick committed a move.
func (gm *GameManager) Select(ctx context.Context, gameID, playerID string, pos model.Position) (model.GameState, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	state, ply, err := game.SelectAs(playerID, pos)
	if err != nil {
		return model.GameState{}, err
	}
	if ply != nil {
		log.Printf("game %s: %s played %s", gameID, ply.Piece.Color, ply.Notation)
		gm.persist(ctx, game)
	}
	return state, nil
}

func (gm *GameManager) Undo(ctx context.Context, gameID, playerID string) (model.GameState, error) {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return model.GameState{}, err
	}
	if !game.IsPlayerInGame(playerID) {
		return model.GameState{}, model.ErrNotInGame
	}
	state, err := game.Undo()
	if err != nil {
		return model.GameState{}, err
	}
	log.Printf("game %s: player %s took back a move", gameID, playerID)
	gm.persist(ctx, game)
	return state, nil
}

func (gm *GameManager) RegisterConnection(ctx context.Context, gameID string, playerID string, conn *websocket.Conn) error {
	game, err := gm.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// NotifyError reports a failed request back over the player's socket.
func (gm *GameManager) NotifyError(gameID, playerID string, cause error) {
	gm.mu.RLock()
	game, exists := gm.games[gameID]
	gm.mu.RUnlock()
	if !exists {
		return
	}
	if err := game.SendError(playerID, cause); err != nil {
		log.Printf("game %s: send error to %s: %v", gameID, playerID, err)
	}
}

// persist saves the game; failures are logged, the live session stays
// authoritative.
func (gm *GameManager) persist(ctx context.Context, game *model.Game) {
	if gm.store == nil {
		return
	}
	rec := store.Record{Snapshot: game.Snapshot(), Players: game.Players()}
	if err := gm.store.Save(ctx, game.ID, rec); err != nil {
		log.Printf("game %s: persist: %v", game.ID, err)
	}
}
