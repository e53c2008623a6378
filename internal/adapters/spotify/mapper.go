package spotify

import (
	"strings"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

// mapTrackToDomain converts a raw Spotify track to a clean Domain track.
func mapTrackToDomain(st spotifyTrack) domain.Track {
	artistNames := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		artistNames = append(artistNames, a.Name)
	}

	return domain.Track{
		ID:         st.ID,
		Title:      st.Name,
		Artist:     strings.Join(artistNames, ", "),
		DurationMs: st.DurationMs,
		PreviewURL: st.PreviewURL,
	}
}

// mapAnalysisToDomain keeps the raw segment values; normalisation belongs to the core.
// A missing track duration is taken from the furthest segment end.
func mapAnalysisToDomain(trackID string, sa spotifyAudioAnalysis) domain.TrackAnalysis {
	segments := make([]domain.RawSegment, len(sa.Segments))
	furthest := 0.0
	for i, s := range sa.Segments {
		segments[i] = domain.RawSegment{
			Start:       s.Start,
			Duration:    s.Duration,
			LoudnessMax: s.LoudnessMax,
		}
		if end := s.Start + s.Duration; end > furthest {
			furthest = end
		}
	}

	duration := sa.Track.Duration
	if duration <= 0 {
		duration = furthest
	}

	return domain.TrackAnalysis{
		TrackID:  trackID,
		Source:   domain.SourceFullTrack,
		Duration: duration,
		Segments: segments,
	}
}
