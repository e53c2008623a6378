// Package waveform turns analysed segments into a fixed-resolution amplitude
// profile and rasterises that profile as a mirrored bar waveform.
package waveform

import (
	"fmt"
	"math"
	"sort"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

// Build resamples segments into an AmplitudeProfile.
//
// Sample i is taken at position i/1000 from the first segment, in the given
// order, whose end boundary is at or after the position. Samples are divided
// by the loudest segment and rounded to two decimals.
func Build(segments []domain.Segment) (domain.AmplitudeProfile, error) {
	var profile domain.AmplitudeProfile

	if len(segments) == 0 {
		return profile, &domain.MalformedSegmentsError{Position: -1, Reason: "no segments"}
	}

	// reach[i] is the furthest end boundary among segments[0..i]. It is
	// non-decreasing, and the first index where it reaches p is also the first
	// segment whose own end reaches p.
	reach := make([]float64, len(segments))
	peak := 0.0
	for i, s := range segments {
		if math.IsNaN(s.Loudness) || s.Loudness < 0 || s.Loudness > 1 {
			return profile, &domain.MalformedSegmentsError{
				Position: -1,
				Reason:   fmt.Sprintf("segment %d loudness %v outside [0,1]", i, s.Loudness),
			}
		}
		if math.IsNaN(s.End()) {
			return profile, &domain.MalformedSegmentsError{
				Position: -1,
				Reason:   fmt.Sprintf("segment %d has no end boundary", i),
			}
		}
		reach[i] = s.End()
		if i > 0 && reach[i-1] > reach[i] {
			reach[i] = reach[i-1]
		}
		peak = math.Max(peak, s.Loudness)
	}

	if peak == 0 {
		return profile, fmt.Errorf("%w: all %d segments are silent", domain.ErrDegenerateLoudness, len(segments))
	}

	for i := range profile {
		p := float64(i) / domain.ProfileResolution
		idx := sort.Search(len(reach), func(j int) bool { return p <= reach[j] })
		if idx == len(reach) {
			return domain.AmplitudeProfile{}, &domain.MalformedSegmentsError{Position: p}
		}
		profile[i] = roundHundredths(segments[idx].Loudness / peak)
	}

	return profile, nil
}

// BuildFromAnalysis normalises a raw analysis and builds its profile.
func BuildFromAnalysis(analysis domain.TrackAnalysis) (domain.AmplitudeProfile, error) {
	segments, err := analysis.Normalize()
	if err != nil {
		return domain.AmplitudeProfile{}, err
	}
	return Build(segments)
}

func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}
