package gamestate

import (
	"log"

	"github.com/milk9111/unicycle/ecs"
)

// maxTransitionsPerFrame caps chained transitions applied in one frame.
const maxTransitionsPerFrame = 8

// Machine runs per-state systems and applies queued transitions at the end of
// each frame.
type Machine struct {
	stack *Stack

	enter   map[State][]ecs.System
	exit    map[State][]ecs.System
	update  map[State][]ecs.System
	inStack map[State][]ecs.System

	started bool
	Debug   bool
}

func NewMachine(initial State) *Machine {
	return &Machine{
		stack:   NewStack(initial),
		enter:   make(map[State][]ecs.System),
		exit:    make(map[State][]ecs.System),
		update:  make(map[State][]ecs.System),
		inStack: make(map[State][]ecs.System),
	}
}

func (m *Machine) Stack() *Stack {
	return m.stack
}

func (m *Machine) Current() State {
	return m.stack.Current()
}

func (m *Machine) OnEnter(st State, systems ...ecs.System) {
	m.enter[st] = append(m.enter[st], systems...)
}

func (m *Machine) OnExit(st State, systems ...ecs.System) {
	m.exit[st] = append(m.exit[st], systems...)
}

// OnUpdate systems run every frame while st is the top state.
func (m *Machine) OnUpdate(st State, systems ...ecs.System) {
	m.update[st] = append(m.update[st], systems...)
}

// OnInStackUpdate systems run every frame while st is anywhere in the stack,
// including the top, after the top state's update systems.
func (m *Machine) OnInStackUpdate(st State, systems ...ecs.System) {
	m.inStack[st] = append(m.inStack[st], systems...)
}

// Update runs one frame. The first call enters the initial state.
func (m *Machine) Update(w *ecs.World) {
	if !m.started {
		m.started = true
		run(w, m.enter[m.stack.Current()])
		m.applyPending(w)
	}

	run(w, m.update[m.stack.Current()])
	for _, st := range m.stack.States() {
		run(w, m.inStack[st])
	}

	m.applyPending(w)
}

func (m *Machine) applyPending(w *ecs.World) {
	for i := 0; m.stack.Pending(); i++ {
		if i >= maxTransitionsPerFrame {
			log.Printf("gamestate: more than %d transitions in one frame, deferring %s", maxTransitionsPerFrame, m.stack.pending.state)
			return
		}
		m.apply(w, m.stack.take())
	}
}

func (m *Machine) apply(w *ecs.World, r *request) {
	before := m.stack.Current()
	switch r.op {
	case opSet:
		run(w, m.exit[before])
		m.stack.states[len(m.stack.states)-1] = r.state
		run(w, m.enter[r.state])
	case opPush:
		m.stack.states = append(m.stack.states, r.state)
		run(w, m.enter[r.state])
	case opPop:
		run(w, m.exit[before])
		m.stack.states = m.stack.states[:len(m.stack.states)-1]
	case opReplace:
		old := m.stack.States()
		for i := len(old) - 1; i >= 0; i-- {
			run(w, m.exit[old[i]])
		}
		m.stack.states = []State{r.state}
		run(w, m.enter[r.state])
	}
	if m.Debug {
		log.Printf("gamestate: %s %s -> %v", r.op, before, m.stack.states)
	}
}

func run(w *ecs.World, systems []ecs.System) {
	for _, s := range systems {
		s.Update(w)
	}
}
