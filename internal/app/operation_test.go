package app

import (
	"errors"
	"testing"
	"time"
)

func TestNewOperation(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 7, 0, time.FixedZone("CET", 3600))
	op := NewOperation("meal add", now)

	if op.ID != "20240315T080507Z" {
		t.Errorf("ID = %q, want %q", op.ID, "20240315T080507Z")
	}
	if op.Name != "meal add" {
		t.Errorf("Name = %q, want %q", op.Name, "meal add")
	}
	if op.Status != "success" {
		t.Errorf("Status = %q, want %q", op.Status, "success")
	}
	if op.Mutated {
		t.Error("Mutated = true for a new operation")
	}
	if got := op.Elapsed(now.Add(3 * time.Second)); got != 3*time.Second {
		t.Errorf("Elapsed() = %v, want 3s", got)
	}
}

func TestOperation_Record(t *testing.T) {
	tests := []struct {
		name        string
		steps       []error
		mutated     bool
		wantStatus  string
		wantMutated bool
	}{
		{name: "read only", steps: []error{nil}, wantStatus: "success"},
		{name: "mutation", steps: []error{nil}, mutated: true, wantStatus: "success", wantMutated: true},
		{name: "failure", steps: []error{errors.New("boom")}, mutated: true, wantStatus: "error"},
		{name: "failure sticks", steps: []error{errors.New("boom"), nil}, wantStatus: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := NewOperation("x", time.Now())
			for _, err := range tt.steps {
				op.Record(err, tt.mutated)
			}
			if op.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", op.Status, tt.wantStatus)
			}
			if op.Mutated != tt.wantMutated {
				t.Errorf("Mutated = %v, want %v", op.Mutated, tt.wantMutated)
			}
		})
	}
}
