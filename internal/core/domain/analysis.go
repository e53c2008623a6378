package domain

import "math"

const (
	// LoudnessFloorDB is the quietest loudness_max that still registers above zero.
	LoudnessFloorDB = -17.0
	// LoudnessCeilingDB maps to full scale.
	LoudnessCeilingDB = 0.0
)

// RawSegment is one analysed interval as delivered by the analysis service.
type RawSegment struct {
	Start       float64 `json:"start"`        // seconds
	Duration    float64 `json:"duration"`     // seconds
	LoudnessMax float64 `json:"loudness_max"` // dB, roughly [-60, 0]
}

// AnalysisSource records where an analysis came from.
type AnalysisSource string

const (
	// SourceFullTrack is an analysis covering the whole track.
	SourceFullTrack AnalysisSource = "analysis"
	// SourcePreview is derived from a preview clip. The clip is an excerpt at
	// an unknown offset, so a profile built from it spans the excerpt only and
	// does not line up with full-track playback.
	SourcePreview AnalysisSource = "preview"
)

// TrackAnalysis is the raw audio analysis of one track.
type TrackAnalysis struct {
	TrackID  string         `json:"track_id"`
	Source   AnalysisSource `json:"source,omitempty"` // empty means SourceFullTrack
	Duration float64        `json:"duration"`         // seconds
	Segments []RawSegment   `json:"segments"`
}

// Segment is a RawSegment normalised to the track duration and to a [0,1] loudness scale.
type Segment struct {
	StartFraction    float64
	DurationFraction float64
	Loudness         float64
}

// End returns the fraction of the track at which the segment ends.
func (s Segment) End() float64 {
	return s.StartFraction + s.DurationFraction
}

// NormalizeLoudness clamps a dB value to [-17, 0] and rescales it to [0, 1].
func NormalizeLoudness(db float64) float64 {
	clamped := math.Min(math.Max(db, LoudnessFloorDB), LoudnessCeilingDB)
	return 1 - clamped/LoudnessFloorDB
}

// Normalize converts the raw segments into track-relative Segments.
// This is the only place the loudness rescale is applied.
func (a TrackAnalysis) Normalize() ([]Segment, error) {
	if len(a.Segments) == 0 {
		return nil, malformed("analysis has no segments")
	}
	if !(a.Duration > 0) || math.IsInf(a.Duration, 0) {
		return nil, malformed("track duration %v is not positive", a.Duration)
	}

	segments := make([]Segment, len(a.Segments))
	for i, raw := range a.Segments {
		if math.IsNaN(raw.Start) || math.IsNaN(raw.Duration) || math.IsNaN(raw.LoudnessMax) {
			return nil, malformed("segment %d has NaN fields", i)
		}
		segments[i] = Segment{
			StartFraction:    raw.Start / a.Duration,
			DurationFraction: raw.Duration / a.Duration,
			Loudness:         NormalizeLoudness(raw.LoudnessMax),
		}
	}
	return segments, nil
}
