package lock

import (
	"errors"
	"testing"
)

type stubNegotiations bool

func (s stubNegotiations) AnyNonResigningNegotiation() bool { return bool(s) }

func TestCanStartNegotiation(t *testing.T) {
	tests := []struct {
		name      string
		gameSim   bool
		newPhase  bool
		openNeg   bool
		resigning bool
		want      bool
	}{
		{name: "all clear", want: true},
		{name: "game sim running", gameSim: true, want: false},
		{name: "phase change running", newPhase: true, want: false},
		{name: "other negotiation open", openNeg: true, want: false},
		{name: "other negotiation open but resigning", openNeg: true, resigning: true, want: true},
		{name: "game sim running blocks resigning too", gameSim: true, resigning: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Set(GameSim, tt.gameSim)
			r.Set(NewPhase, tt.newPhase)
			r.SetNegotiationChecker(stubNegotiations(tt.openNeg))

			if got := r.CanStartNegotiation(tt.resigning); got != tt.want {
				t.Errorf("CanStartNegotiation(%v) = %v, want %v", tt.resigning, got, tt.want)
			}
		})
	}
}

func TestWithReleasesOnError(t *testing.T) {
	r := NewRegistry()

	wantErr := errors.New("transition failed")
	if err := r.With(NewPhase, func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("With returned %v, want %v", err, wantErr)
	}
	if r.Get(NewPhase) {
		t.Fatal("newPhase flag still held after failed transition")
	}
}

func TestWithReleasesOnPanic(t *testing.T) {
	r := NewRegistry()

	func() {
		defer func() { _ = recover() }()
		_ = r.With(NewPhase, func() error { panic("invariant violation") })
	}()

	if r.Get(NewPhase) {
		t.Fatal("newPhase flag still held after panic")
	}
}

func TestWithFailsFastWhenHeld(t *testing.T) {
	r := NewRegistry()
	if err := r.TryAcquire(GameSim); err != nil {
		t.Fatalf("TryAcquire: %v", err)
	}

	err := r.With(GameSim, func() error { return nil })
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("With on held flag returned %v, want ErrLocked", err)
	}
}
