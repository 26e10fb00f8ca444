package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/store"
	"github.com/benbeisheim/clickchess-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
)

func TestRunClosesStoreWhenListenFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	var opened *store.Store
	openStore = func(p string) (*store.Store, error) {
		st, err := store.Open(p)
		opened = st
		return st, err
	}
	t.Cleanup(func() { openStore = store.Open })

	cfg := &config.Config{Addr: ":0", AllowOrigins: []string{"http://localhost:5173"}, DBPath: path}
	bindErr := errors.New("address already in use")
	var gameID string

	err := run(cfg, func(app *fiber.App) error {
		req := httptest.NewRequest(http.MethodPost, "/api/game/create", nil)
		req.Header.Set("X-Player-ID", "alice")
		resp, err := app.Test(req, -1)
		testutil.AssertNoError(t, err)
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		var body struct {
			GameID string `json:"game_id"`
		}
		testutil.AssertNoError(t, json.Unmarshal(data, &body))
		gameID = body.GameID
		return bindErr
	})
	testutil.AssertErrorIs(t, err, bindErr)

	if opened == nil {
		t.Fatal("store was never opened")
	}
	_, err = opened.Load(context.Background(), gameID)
	testutil.AssertTrue(t, err != nil, "store should be closed after run returns")

	reopened, err := store.Open(path)
	testutil.AssertNoError(t, err)
	defer reopened.Close()
	_, err = reopened.Load(context.Background(), gameID)
	testutil.AssertNoError(t, err, "game written before shutdown")
}

func TestRunWithoutStore(t *testing.T) {
	cfg := &config.Config{Addr: ":0", AllowOrigins: []string{"http://localhost:5173"}}
	err := run(cfg, func(app *fiber.App) error {
		req := httptest.NewRequest(http.MethodGet, "/api/game/missing", nil)
		req.Header.Set("X-Player-ID", "alice")
		resp, err := app.Test(req, -1)
		testutil.AssertNoError(t, err)
		resp.Body.Close()
		testutil.AssertEqual(t, resp.StatusCode, http.StatusNotFound)
		return nil
	})
	testutil.AssertNoError(t, err)
}
