// Package statemachine provides the transition rules shared by the order and
// payment lifecycles. A Validator is built once at startup from a transition
// graph and an optional terminal set, and is safe for concurrent use.
package statemachine

import "fmt"

// Graph maps each status to the set of statuses it may legally move to.
type Graph map[string]map[string]struct{}

// NewGraph builds a Graph from adjacency lists.
func NewGraph(edges map[string][]string) Graph {
	g := make(Graph, len(edges))
	for from, targets := range edges {
		set := make(map[string]struct{}, len(targets))
		for _, to := range targets {
			set[to] = struct{}{}
		}
		g[from] = set
	}
	return g
}

// TransitionError reports an illegal status transition, naming both ends.
type TransitionError struct {
	From     string
	To       string
	Terminal bool
}

func (e *TransitionError) Error() string {
	if e.Terminal {
		return fmt.Sprintf("status %q is terminal, transition to %q is not permitted", e.From, e.To)
	}
	return fmt.Sprintf("transition from %q to %q is not permitted", e.From, e.To)
}

// Validator decides transition legality against a fixed graph. Statuses in the
// terminal set are frozen: no transition out of them is legal, including the
// self-transition that is otherwise always a permitted no-op.
type Validator struct {
	graph    Graph
	terminal map[string]struct{}
}

// NewValidator constructs a Validator. terminal may be empty.
func NewValidator(graph Graph, terminal []string) *Validator {
	set := make(map[string]struct{}, len(terminal))
	for _, s := range terminal {
		set[s] = struct{}{}
	}
	return &Validator{graph: graph, terminal: set}
}

// IsTerminal reports whether the status belongs to the terminal set.
func (v *Validator) IsTerminal(status string) bool {
	_, ok := v.terminal[status]
	return ok
}

// CanTransition reports whether from may move to to.
func (v *Validator) CanTransition(from, to string) bool {
	if v.IsTerminal(from) {
		return false
	}
	if from == to {
		return true
	}
	targets, ok := v.graph[from]
	if !ok {
		return false
	}
	_, ok = targets[to]
	return ok
}

// Validate returns a *TransitionError when the transition is illegal.
func (v *Validator) Validate(from, to string) error {
	if v.IsTerminal(from) {
		return &TransitionError{From: from, To: to, Terminal: true}
	}
	if !v.CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}
