package gamestate

import (
	"errors"
	"fmt"
)

var (
	ErrTransitionQueued = errors.New("gamestate: transition already queued")
	ErrStackFull        = errors.New("gamestate: stack full")
	ErrStackEmpty       = errors.New("gamestate: cannot pop the last state")
	ErrAlreadyInState   = errors.New("gamestate: already in state")
)

// MaxDepth bounds the stack: a level plus one overlay.
const MaxDepth = 2

type operation int

const (
	opSet operation = iota
	opPush
	opPop
	opReplace
)

func (o operation) String() string {
	switch o {
	case opSet:
		return "set"
	case opPush:
		return "push"
	case opPop:
		return "pop"
	default:
		return "replace"
	}
}

type request struct {
	op    operation
	state State
}

// Stack is the single source of truth for the game state. Requests are
// queued, at most one per frame, and applied by the Machine.
type Stack struct {
	states  []State
	pending *request
}

func NewStack(initial State) *Stack {
	return &Stack{states: []State{initial}}
}

// Current returns the top of the stack.
func (s *Stack) Current() State {
	return s.states[len(s.states)-1]
}

func (s *Stack) Depth() int {
	return len(s.states)
}

// States returns a copy, bottom first.
func (s *Stack) States() []State {
	return append([]State(nil), s.states...)
}

// Pending reports whether a transition is waiting to be applied.
func (s *Stack) Pending() bool {
	return s.pending != nil
}

// Set replaces the top state.
func (s *Stack) Set(st State) error {
	if err := s.checkQueue(); err != nil {
		return err
	}
	if s.Current() == st {
		return fmt.Errorf("%w: %s", ErrAlreadyInState, st)
	}
	s.pending = &request{op: opSet, state: st}
	return nil
}

// Push pauses the top state and enters st above it.
func (s *Stack) Push(st State) error {
	if err := s.checkQueue(); err != nil {
		return err
	}
	if s.Current() == st {
		return fmt.Errorf("%w: %s", ErrAlreadyInState, st)
	}
	if len(s.states) >= MaxDepth {
		return fmt.Errorf("%w: push %s onto %v", ErrStackFull, st, s.states)
	}
	s.pending = &request{op: opPush, state: st}
	return nil
}

// Pop exits the top state and resumes the one below.
func (s *Stack) Pop() error {
	if err := s.checkQueue(); err != nil {
		return err
	}
	if len(s.states) <= 1 {
		return ErrStackEmpty
	}
	s.pending = &request{op: opPop}
	return nil
}

// Replace exits every state on the stack and leaves only st.
func (s *Stack) Replace(st State) error {
	if err := s.checkQueue(); err != nil {
		return err
	}
	s.pending = &request{op: opReplace, state: st}
	return nil
}

func (s *Stack) checkQueue() error {
	if s.pending != nil {
		return fmt.Errorf("%w: %s %s", ErrTransitionQueued, s.pending.op, s.pending.state)
	}
	return nil
}

func (s *Stack) take() *request {
	r := s.pending
	s.pending = nil
	return r
}
