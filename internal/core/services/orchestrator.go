package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/ports"
	"github.com/ewilliams-labs/seekwave/internal/core/waveform"
)

var errEmptyTrackID = errors.New("service: track id cannot be empty")

// Orchestrator coordinates analysis retrieval, caching and waveform rendering.
type Orchestrator struct {
	spotify  ports.SpotifyProvider
	repo     ports.AnalysisRepository // optional
	preview  ports.PreviewAnalyzer    // optional
	defaults domain.RenderParameters
}

// NewOrchestrator constructs an Orchestrator. repo and preview may be nil.
// Zero fields of a render request are filled from defaults.
func NewOrchestrator(spotify ports.SpotifyProvider, repo ports.AnalysisRepository, preview ports.PreviewAnalyzer, defaults domain.RenderParameters) *Orchestrator {
	return &Orchestrator{
		spotify:  spotify,
		repo:     repo,
		preview:  preview,
		defaults: defaults,
	}
}

// Analysis returns the raw analysis for a track: from the cache when present,
// otherwise from Spotify, falling back to the track's preview clip when
// Spotify refuses to analyse it. Fetched analyses are cached. The result's
// Source is always set; SourcePreview marks an excerpt-only analysis.
func (o *Orchestrator) Analysis(ctx context.Context, trackID string) (domain.TrackAnalysis, error) {
	if trackID == "" {
		return domain.TrackAnalysis{}, errEmptyTrackID
	}

	if o.repo != nil {
		cached, err := o.repo.GetAnalysis(ctx, trackID)
		if err == nil {
			if cached.Source == "" {
				cached.Source = domain.SourceFullTrack
			}
			return cached, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("WARN service: analysis cache read failed for %s: %v", trackID, err)
		}
	}

	analysis, err := o.spotify.GetAudioAnalysis(ctx, trackID)
	if errors.Is(err, domain.ErrAnalysisUnavailable) && o.preview != nil {
		analysis, err = o.analyzePreview(ctx, trackID)
	}
	if err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("service: failed to fetch analysis: %w", err)
	}
	analysis.TrackID = trackID
	if analysis.Source == "" {
		analysis.Source = domain.SourceFullTrack
	}

	if o.repo != nil {
		if err := o.repo.SaveAnalysis(ctx, analysis); err != nil {
			log.Printf("WARN service: failed to cache analysis for %s: %v", trackID, err)
		}
	}

	return analysis, nil
}

func (o *Orchestrator) analyzePreview(ctx context.Context, trackID string) (domain.TrackAnalysis, error) {
	log.Printf("WARN service: falling back to preview analysis for track %s", trackID)

	track, err := o.spotify.GetTrack(ctx, trackID)
	if err != nil {
		return domain.TrackAnalysis{}, err
	}
	analysis, err := o.preview.AnalyzePreview(ctx, track.PreviewURL)
	if err != nil {
		return domain.TrackAnalysis{}, err
	}
	analysis.Source = domain.SourcePreview
	return analysis, nil
}

// Profile builds the amplitude profile of a track and reports which kind of
// analysis it was built from.
func (o *Orchestrator) Profile(ctx context.Context, trackID string) (domain.AmplitudeProfile, domain.AnalysisSource, error) {
	analysis, err := o.Analysis(ctx, trackID)
	if err != nil {
		return domain.AmplitudeProfile{}, "", err
	}

	profile, err := waveform.BuildFromAnalysis(analysis)
	if err != nil {
		return domain.AmplitudeProfile{}, "", fmt.Errorf("service: failed to build waveform for %s: %w", trackID, err)
	}
	return profile, analysis.Source, nil
}

// RenderWaveform renders the waveform of a track. Parameters are validated
// before any analysis is fetched.
func (o *Orchestrator) RenderWaveform(ctx context.Context, trackID string, params domain.RenderParameters) (*image.NRGBA, domain.AnalysisSource, error) {
	params = o.withDefaults(params)
	if err := params.Validate(); err != nil {
		return nil, "", fmt.Errorf("service: %w", err)
	}
	if _, err := waveform.ParseColor(params.Color); err != nil {
		return nil, "", fmt.Errorf("service: %w", err)
	}

	profile, source, err := o.Profile(ctx, trackID)
	if err != nil {
		return nil, "", err
	}

	img, err := waveform.Render(profile, params)
	if err != nil {
		return nil, "", fmt.Errorf("service: failed to render waveform: %w", err)
	}
	return img, source, nil
}

// Prefetch warms the analysis cache for a track.
func (o *Orchestrator) Prefetch(ctx context.Context, trackID string) error {
	_, err := o.Analysis(ctx, trackID)
	return err
}

func (o *Orchestrator) withDefaults(p domain.RenderParameters) domain.RenderParameters {
	if p.Width == 0 {
		p.Width = o.defaults.Width
	}
	if p.Height == 0 {
		p.Height = o.defaults.Height
	}
	if p.Color == "" {
		p.Color = o.defaults.Color
	}
	return p
}
