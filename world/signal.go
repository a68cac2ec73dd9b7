package world

import (
	"errors"
	"fmt"
	"math"
)

// DefaultDecay is the decay rate given to signals deposited without one
const DefaultDecay = 1.0

// ErrIdentityMismatch is returned when merging two signals with different identities
var ErrIdentityMismatch = errors.New("signal identity mismatch")

// ErrIntensityOverflow is returned when a merge would push the intensity past the float64 range
var ErrIntensityOverflow = errors.New("signal intensity overflow")

// Signal is a named scalar that fades over time, used for indirect communication between ants
type Signal struct {
	id        string
	intensity float64
	decay     float64
}

// NewSignal creates a signal. Negative intensities are clamped to zero.
func NewSignal(id string, intensity, decay float64) *Signal {
	return &Signal{
		id:        id,
		intensity: max(intensity, 0),
		decay:     decay,
	}
}

// ID returns the signal identity
func (s *Signal) ID() string { return s.id }

// Intensity returns the current intensity, never negative
func (s *Signal) Intensity() float64 { return s.intensity }

// DecayRate returns how much intensity is lost per unit of time
func (s *Signal) DecayRate() float64 { return s.decay }

// DecayStep fades the signal by decay*dt. It returns true once the signal is extinguished,
// in which case the intensity is exactly zero.
func (s *Signal) DecayStep(dt float64) bool {
	s.intensity -= s.decay * dt
	if s.intensity <= 0 {
		s.intensity = 0
		return true
	}
	return false
}

// Merge adds other into s. The resulting decay is the intensity-weighted average of both
// decays. When both intensities are zero the decay is left unchanged. A merge whose total
// is not finite fails and leaves s untouched.
func (s *Signal) Merge(other *Signal) error {
	if s.id != other.id {
		return fmt.Errorf("cannot merge %q into %q: %w", other.id, s.id, ErrIdentityMismatch)
	}
	total := s.intensity + other.intensity
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return fmt.Errorf("merging %s into %s: %w", other, s, ErrIntensityOverflow)
	}
	if total > 0 {
		s.decay = (s.decay*s.intensity + other.decay*other.intensity) / total
	}
	s.intensity = total
	return nil
}

// Clone returns an independent copy of s
func (s *Signal) Clone() *Signal {
	c := *s
	return &c
}

func (s *Signal) String() string {
	return fmt.Sprintf("%s(%.3g, decay %.3g)", s.id, s.intensity, s.decay)
}
