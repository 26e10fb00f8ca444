package main

import (
	"flag"
	"log"
	"os"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

func main() {
	logPath := flag.String("log", "./chessterm.log", "path to log file")
	black := flag.Bool("black", false, "view the board from black's side")
	strict := flag.Bool("strict-castling", false, "forbid castling out of, through or into an attacked square")
	flag.Parse()
	initLog(*logPath, "CLIENT: ")

	var opts []model.SelectorOption
	if *strict {
		opts = append(opts, model.WithGenerator(model.Generator{Attacks: model.SquareAttacks{}}))
	}
	board := model.NewBoard()
	board.PlayerWhite = !*black
	game := model.NewGame("local", board, opts...)
	// both seats belong to whoever sits at this terminal
	whiteName, blackName := seatNames(func() string { return petname.Generate(2, "-") })
	for _, name := range []string{whiteName, blackName} {
		if _, err := game.AddPlayer(name); err != nil {
			log.Fatalf("seat %s: %v", name, err)
		}
	}

	app := tview.NewApplication()
	view := newBoardView(game)
	view.table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			app.Stop()
		}
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(view.table, 2*(boardSize+1), 0, true).
		AddItem(view.status, 0, 1, false)

	players := game.Players()
	log.Printf("new local game: %s (white) vs %s (black)", players.White.ID, players.Black.ID)
	if err := app.SetRoot(layout, true).EnableMouse(true).Run(); err != nil {
		log.Fatal(err)
	}
}

// seatNames draws two distinct names; a repeat would seat one player twice.
func seatNames(gen func() string) (string, string) {
	white := gen()
	black := gen()
	for black == white {
		black = gen()
	}
	return white, black
}

func initLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}
