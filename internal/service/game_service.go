package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// CreateGameRequest optionally starts a game from an explicit layout.
type CreateGameRequest struct {
	Board       [][]string `json:"board"`
	WhiteToMove *bool      `json:"whiteToMove"`
}

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(ctx context.Context, req CreateGameRequest) (string, error) {
	var board *model.Board
	if req.Board != nil {
		whiteToMove := true
		if req.WhiteToMove != nil {
			whiteToMove = *req.WhiteToMove
		}
		var err error
		board, err = model.NewBoardFromArray(req.Board, whiteToMove, true)
		if err != nil {
			return "", fmt.Errorf("failed to create game: %w", err)
		}
	}

	gameID := uuid.New().String()
	if err := gs.gameManager.CreateGame(ctx, gameID, board); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(ctx context.Context, gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(ctx, gameID, playerID)
}

func (gs *GameService) GetGameState(ctx context.Context, gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(ctx, gameID)
}

func (gs *GameService) HandleSelect(ctx context.Context, gameID string, playerID string, pos model.Position) (model.GameState, error) {
	return gs.gameManager.Select(ctx, gameID, playerID, pos)
}

func (gs *GameService) HandleUndo(ctx context.Context, gameID string, playerID string) (model.GameState, error) {
	return gs.gameManager.Undo(ctx, gameID, playerID)
}

func (gs *GameService) RegisterConnection(ctx context.Context, gameID string, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(ctx, gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *websocket.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) NotifyError(gameID string, playerID string, cause error) {
	gs.gameManager.NotifyError(gameID, playerID, cause)
}
