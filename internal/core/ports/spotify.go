package ports

import (
	"context"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

// AnalysisProvider fetches the raw audio analysis of a track.
type AnalysisProvider interface {
	GetAudioAnalysis(ctx context.Context, trackID string) (domain.TrackAnalysis, error)
}

// TrackProvider fetches track metadata.
type TrackProvider interface {
	GetTrack(ctx context.Context, trackID string) (domain.Track, error)
}

type SpotifyProvider interface {
	AnalysisProvider
	TrackProvider
}

// PreviewAnalyzer derives an analysis from a track's audio preview.
type PreviewAnalyzer interface {
	AnalyzePreview(ctx context.Context, previewURL string) (domain.TrackAnalysis, error)
}
