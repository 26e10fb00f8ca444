package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	ctx := context.Background()

	if err := wsc.gameService.RegisterConnection(ctx, gameID, playerID, c); err != nil {
		log.Printf("register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("game %s: read from %s: %v", gameID, playerID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("game %s: parse message from %s: %v", gameID, playerID, err)
			continue
		}
		// successful transitions reach the client through the game broadcast
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.gameService.NotifyError(gameID, playerID, err)
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	ctx := context.Background()
	switch msg.Type {
	case ws.MessageTypeSelect:
		var payload ws.SelectPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("invalid select payload: %w", err)
		}
		pos := model.Position{Row: payload.Row, Col: payload.Col}
		_, err := wsc.gameService.HandleSelect(ctx, gameID, playerID, pos)
		return err
	case ws.MessageTypeUndo:
		_, err := wsc.gameService.HandleUndo(ctx, gameID, playerID)
		return err
	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
