package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSegments indicates segments that do not cover [0,1) or are structurally invalid.
	ErrMalformedSegments = errors.New("domain: malformed segments")
	// ErrDegenerateLoudness indicates every segment is silent.
	ErrDegenerateLoudness = errors.New("domain: degenerate loudness")
	// ErrInvalidRenderParameters indicates a non-positive size or an unknown colour.
	ErrInvalidRenderParameters = errors.New("domain: invalid render parameters")
	// ErrNotFound indicates a missing stored record.
	ErrNotFound = errors.New("domain: not found")
	// ErrAnalysisUnavailable indicates the analysis service refused the track.
	ErrAnalysisUnavailable = errors.New("domain: analysis unavailable")
)

// MalformedSegmentsError provides context for a rejected segment sequence.
type MalformedSegmentsError struct {
	Position float64 // sample position that no segment covers, -1 if not position related
	Reason   string
}

func (e *MalformedSegmentsError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s: no segment covers position %.3f", ErrMalformedSegments.Error(), e.Position)
	}
	if e.Reason == "" {
		return ErrMalformedSegments.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMalformedSegments.Error(), e.Reason)
}

func (e *MalformedSegmentsError) Is(target error) bool {
	return target == ErrMalformedSegments
}

func malformed(format string, args ...any) error {
	return &MalformedSegmentsError{Position: -1, Reason: fmt.Sprintf(format, args...)}
}
