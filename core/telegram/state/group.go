package state

// State names a single step of a conversation group. Values are qualified
// as "group/step" so two groups can share step names without colliding.
type State string

// Group is a named, ordered, immutable list of states describing one
// multi-step form.
type Group struct {
	name   string
	states []State
}

// NewGroup declares a conversation group. Step names are qualified with the
// group name, so NewGroup("category_add", "name") yields the state
// "category_add/name".
func NewGroup(name string, steps ...string) Group {
	states := make([]State, len(steps))
	for i, s := range steps {
		states[i] = State(name + "/" + s)
	}
	return Group{name: name, states: states}
}

// Name returns the group name.
func (g Group) Name() string { return g.name }

// States returns the declared states in order.
func (g Group) States() []State {
	return append([]State(nil), g.states...)
}

// First returns the entry state of the group.
func (g Group) First() State {
	if len(g.states) == 0 {
		return ""
	}
	return g.states[0]
}

// State qualifies a step name into this group's state.
func (g Group) State(step string) State {
	return State(g.name + "/" + step)
}

// Contains reports whether st is one of the group's declared states.
func (g Group) Contains(st State) bool {
	for _, s := range g.states {
		if s == st {
			return true
		}
	}
	return false
}

// Next returns the state that follows st. At the terminal state it returns
// a TerminalStateError; for an undeclared state an InvalidStateError.
func (g Group) Next(st State) (State, error) {
	for i, s := range g.states {
		if s != st {
			continue
		}
		if i == len(g.states)-1 {
			return "", &TerminalStateError{Group: g.name, State: st}
		}
		return g.states[i+1], nil
	}
	return "", &InvalidStateError{Group: g.name, State: st}
}
