package main

import (
	"fmt"
	"log"
	"slices"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const boardSize = 8

var glyphs = map[string]string{
	"wk": "♔", "wq": "♕", "wr": "♖", "wb": "♗", "wn": "♘", "wp": "♙",
	"bk": "♚", "bq": "♛", "br": "♜", "bb": "♝", "bn": "♞", "bp": "♟",
}

// boardView draws a game into a selectable table. Table row boardSize holds
// the file letters and column 0 the rank numbers.
type boardView struct {
	game        *model.Game
	table       *tview.Table
	status      *tview.TextView
	playerWhite bool
}

func newBoardView(game *model.Game) *boardView {
	state := game.GetState()
	v := &boardView{
		game:        game,
		table:       tview.NewTable(),
		status:      tview.NewTextView(),
		playerWhite: state.PlayerWhite,
	}
	v.table.SetSelectable(true, true)
	v.table.SetSelectedFunc(v.onSelect)
	v.render(state)
	return v
}

func (v *boardView) onSelect(row, col int) {
	pos, ok := v.toPosition(row, col)
	if !ok {
		return
	}
	state, ply, err := v.game.Select(pos)
	if err != nil {
		log.Printf("select %v: %v", pos, err)
		return
	}
	if ply != nil {
		log.Printf("move: %s", ply.Notation)
	}
	v.render(state)
}

// toPosition maps a table cell to a board square, honoring orientation.
func (v *boardView) toPosition(row, col int) (model.Position, bool) {
	if row < 0 || row >= boardSize || col < 1 || col > boardSize {
		return model.Position{}, false
	}
	pos := model.Position{Row: row, Col: col - 1}
	if !v.playerWhite {
		pos = model.Position{Row: boardSize - 1 - pos.Row, Col: boardSize - 1 - pos.Col}
	}
	return pos, true
}

func (v *boardView) toCell(pos model.Position) (int, int) {
	if !v.playerWhite {
		pos = model.Position{Row: boardSize - 1 - pos.Row, Col: boardSize - 1 - pos.Col}
	}
	return pos.Row, pos.Col + 1
}

func (v *boardView) render(state model.GameState) {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			pos := model.Position{Row: row, Col: col}
			r, c := v.toCell(pos)
			cell := tview.NewTableCell(" " + glyph(state.Board[row][col]) + " ").
				SetAlign(tview.AlignCenter).
				SetBackgroundColor(squareColor(pos, state.SelectedSquare, state.LegalMoves))
			v.table.SetCell(r, c, cell)
		}
	}
	for i := 0; i < boardSize; i++ {
		rank, file := boardSize-i, 'a'+rune(i)
		if !v.playerWhite {
			rank, file = i+1, 'h'-rune(i)
		}
		v.table.SetCell(i, 0, tview.NewTableCell(fmt.Sprintf("%d", rank)).SetSelectable(false))
		v.table.SetCell(boardSize, i+1, tview.NewTableCell(fmt.Sprintf(" %c ", file)).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
	v.table.SetCell(boardSize, 0, tview.NewTableCell("").SetSelectable(false))
	v.status.SetText(statusLine(state))
}

func statusLine(state model.GameState) string {
	mover := state.Players.White.ID
	if state.ToMove == model.Black {
		mover = state.Players.Black.ID
	}
	line := fmt.Sprintf("%s to move", state.ToMove)
	if mover != "" {
		line = fmt.Sprintf("%s (%s) to move", state.ToMove, mover)
	}
	if state.IsCheck {
		line += " (check)"
	}
	if n := len(state.MoveHistory); n > 0 {
		line += fmt.Sprintf(" | last: %s", state.MoveHistory[n-1].Notation)
	}
	return line + " | Esc to quit"
}

func glyph(token string) string {
	if g, ok := glyphs[token]; ok {
		return g
	}
	return " "
}

// squareColor highlights the first pick and its candidate destinations over
// the checkered background.
func squareColor(pos model.Position, selected *model.Position, candidates []model.Position) tcell.Color {
	switch {
	case selected != nil && *selected == pos:
		return tcell.ColorYellow
	case slices.Contains(candidates, pos):
		return tcell.ColorRed
	case (pos.Row+pos.Col)%2 == 0:
		return tcell.ColorBlue
	default:
		return tcell.ColorGreen
	}
}
