package statemachine_test

import (
	"errors"
	"testing"

	"github.com/commercekit/commerce-core/internal/statemachine"
)

func testValidator() *statemachine.Validator {
	graph := statemachine.NewGraph(map[string][]string{
		"PENDING":    {"AUTHORIZED", "FAILED"},
		"AUTHORIZED": {"CAPTURED", "FAILED"},
	})
	return statemachine.NewValidator(graph, []string{"CAPTURED", "FAILED"})
}

func TestCanTransition(t *testing.T) {
	v := testValidator()

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"graph edge", "PENDING", "AUTHORIZED", true},
		{"second hop", "AUTHORIZED", "CAPTURED", true},
		{"missing edge", "PENDING", "CAPTURED", false},
		{"reverse edge", "AUTHORIZED", "PENDING", false},
		{"self transition", "PENDING", "PENDING", true},
		{"unknown status", "UNKNOWN", "PENDING", false},
		{"terminal source", "CAPTURED", "AUTHORIZED", false},
		{"terminal self transition", "FAILED", "FAILED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidateNamesBothStatuses(t *testing.T) {
	v := testValidator()

	err := v.Validate("PENDING", "CAPTURED")
	if err == nil {
		t.Fatal("expected error for illegal transition")
	}

	var transErr *statemachine.TransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if transErr.From != "PENDING" || transErr.To != "CAPTURED" {
		t.Errorf("error names (%q, %q), want (PENDING, CAPTURED)", transErr.From, transErr.To)
	}
	if transErr.Terminal {
		t.Error("expected Terminal to be false for a plain missing edge")
	}
}

func TestValidateTerminalIsAbsolute(t *testing.T) {
	v := testValidator()

	// Even a self-transition is rejected once a status is terminal.
	for _, to := range []string{"CAPTURED", "AUTHORIZED", "PENDING"} {
		err := v.Validate("CAPTURED", to)
		if err == nil {
			t.Fatalf("expected terminal rejection for CAPTURED -> %s", to)
		}
		var transErr *statemachine.TransitionError
		if !errors.As(err, &transErr) {
			t.Fatalf("expected *TransitionError, got %T", err)
		}
		if !transErr.Terminal {
			t.Errorf("expected Terminal flag set for CAPTURED -> %s", to)
		}
	}
}

func TestEmptyTerminalSetKeepsSelfTransitionsLegal(t *testing.T) {
	// With no terminal set, finality comes only from missing outgoing edges
	// and the self-transition stays legal everywhere.
	graph := statemachine.NewGraph(map[string][]string{
		"PENDING": {"DONE"},
	})
	v := statemachine.NewValidator(graph, nil)

	if err := v.Validate("DONE", "DONE"); err != nil {
		t.Errorf("expected self-transition on a dead-end status, got %v", err)
	}
	if v.IsTerminal("DONE") {
		t.Error("expected no status to be terminal")
	}

	err := v.Validate("DONE", "PENDING")
	if err == nil {
		t.Fatal("expected rejection for a missing edge out of a dead end")
	}
	var transErr *statemachine.TransitionError
	if !errors.As(err, &transErr) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if transErr.Terminal {
		t.Error("expected Terminal to be false without a terminal set")
	}
}

func TestValidateLegalTransition(t *testing.T) {
	v := testValidator()

	if err := v.Validate("PENDING", "AUTHORIZED"); err != nil {
		t.Errorf("expected legal transition, got %v", err)
	}
	if err := v.Validate("PENDING", "PENDING"); err != nil {
		t.Errorf("expected self-transition to be legal, got %v", err)
	}
}
