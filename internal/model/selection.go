package model

import (
	"fmt"
	"slices"
)

// Selector turns successive square picks into moves. It is idle until a
// piece of the side to move is picked, then armed with that piece's
// candidate destinations until the next pick re-selects, commits or cancels.
// Bad picks are absorbed silently.
type Selector struct {
	first     *Position
	moves     []Position
	generator Generator
	executor  MoveExecutor
}

type SelectorOption func(*Selector)

func WithGenerator(g Generator) SelectorOption {
	return func(s *Selector) {
		s.generator = g
	}
}

func WithExecutor(e MoveExecutor) SelectorOption {
	return func(s *Selector) {
		s.executor = e
	}
}

func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		moves:    []Position{},
		executor: ExecutorFunc(ExecuteMove),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MakeSelection feeds one picked square to the state machine. It returns the
// executed ply when the pick committed a move. The only error is
// ErrOutOfRange, and the state is left untouched when it is returned.
func (s *Selector) MakeSelection(pos Position, b *Board) (*Ply, error) {
	if !pos.Valid() {
		return nil, fmt.Errorf("select %v: %w", pos, ErrOutOfRange)
	}
	if s.first == nil || pos == *s.first || s.isOwnPiece(pos, b) {
		s.arm(pos, b)
		return nil, nil
	}
	if slices.Contains(s.moves, pos) {
		req := MoveRequest{From: *s.first, To: pos, Board: b}
		s.Reset()
		ply := s.executor.Execute(req)
		return &ply, nil
	}
	s.Reset()
	return nil, nil
}

func (s *Selector) isOwnPiece(pos Position, b *Board) bool {
	piece := b.At(pos)
	return !piece.IsEmpty() && piece.Color == b.SideToMove()
}

func (s *Selector) arm(pos Position, b *Board) {
	s.Reset()
	if !s.isOwnPiece(pos, b) {
		return
	}
	s.first = &pos
	s.moves = s.generator.Moves(b, b.At(pos))
}

// Reset returns the selector to idle.
func (s *Selector) Reset() {
	s.first = nil
	s.moves = []Position{}
}

// Armed reports whether a first pick is held.
func (s *Selector) Armed() bool {
	return s.first != nil
}

// Selected returns the first pick, if any.
func (s *Selector) Selected() (Position, bool) {
	if s.first == nil {
		return Position{}, false
	}
	return *s.first, true
}

// Candidates returns a copy of the armed piece's destinations; it is empty
// while idle.
func (s *Selector) Candidates() []Position {
	return slices.Clone(s.moves)
}
