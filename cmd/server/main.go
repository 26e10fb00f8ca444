package main

import (
	"fmt"
	"log"
	"os"

	"github.com/benbeisheim/clickchess-backend/internal/config"
	"github.com/benbeisheim/clickchess-backend/internal/controller"
	"github.com/benbeisheim/clickchess-backend/internal/middleware"
	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/benbeisheim/clickchess-backend/internal/service"
	"github.com/benbeisheim/clickchess-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

var openStore = store.Open

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	initLog(cfg.LogPath, "SERVER: ")

	err = run(cfg, func(app *fiber.App) error {
		log.Printf("listening on %s", cfg.Addr)
		return app.Listen(cfg.Addr)
	})
	if err != nil {
		log.Fatal(err)
	}
}

// run wires the server and blocks in listen. The store is closed before run
// returns, whichever way listen ends.
func run(cfg *config.Config, listen func(*fiber.App) error) error {
	var persister service.Persister
	if cfg.DBPath != "" {
		st, err := openStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("store: %w", err)
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()
		persister = st
		log.Printf("persisting games to %s", cfg.DBPath)
	}

	var opts []model.SelectorOption
	if cfg.StrictCastling {
		opts = append(opts, model.WithGenerator(model.Generator{Attacks: model.SquareAttacks{}}))
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.OriginList(),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	gameManager := service.NewGameManager(persister, opts...)
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.SetupRoutes(app, gameController, wsController, cfg.AllowOrigins)

	if err := listen(app); err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	return nil
}

func initLog(dest, prefix string) {
	log.SetPrefix(prefix)
	if dest == "" {
		return
	}
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	log.SetOutput(f)
}
