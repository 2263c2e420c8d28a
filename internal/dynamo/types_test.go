package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestParticle_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		p     Particle
		valid bool
	}{
		{"zero", Particle{}, true},
		{"normal", Particle{X: 1, Y: 2, VX: 0.3, VY: -0.4, Mass: 1}, true},
		{"NaN x", Particle{X: math.NaN()}, false},
		{"+Inf vy", Particle{VY: math.Inf(1)}, false},
		{"-Inf vx", Particle{VX: math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestEnsemble_CloneIsIndependent(t *testing.T) {
	e := Ensemble{{X: 1}, {X: 2}}
	c := e.Clone()
	c[0].X = 99

	if e[0].X != 1 {
		t.Errorf("clone aliases original: %f", e[0].X)
	}
	if len(c) != 2 {
		t.Errorf("expected 2 particles, got %d", len(c))
	}
}

func TestEnsemble_MeanSpeed(t *testing.T) {
	if s := (Ensemble{}).MeanSpeed(); s != 0 {
		t.Errorf("empty ensemble speed %f", s)
	}
	e := Ensemble{{VX: 3, VY: 4}, {VX: 0, VY: 1}}
	if s := e.MeanSpeed(); math.Abs(s-3) > 1e-12 {
		t.Errorf("expected mean speed 3, got %f", s)
	}
}

func TestBounds_Validate(t *testing.T) {
	if err := DefaultBounds().Validate(); err != nil {
		t.Errorf("default bounds invalid: %v", err)
	}
	for _, b := range []Bounds{{0, 10}, {10, 0}, {-1, 5}} {
		if err := b.Validate(); !errors.Is(err, ErrInvalidBounds) {
			t.Errorf("bounds %+v: expected ErrInvalidBounds, got %v", b, err)
		}
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"room", Params{Temperature: 300, Noise: 1, Count: 220}, true},
		{"empty", Params{}, true},
		{"negative temperature", Params{Temperature: -1}, false},
		{"negative noise", Params{Noise: -0.1}, false},
		{"negative count", Params{Count: -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestFrameError_Unwrap(t *testing.T) {
	err := &FrameError{Frame: 3, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("FrameError should unwrap to its cause")
	}
	if err.Error() != ErrInvalidState.Error() {
		t.Errorf("unexpected message %q", err.Error())
	}
}
