package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

// GetAudioAnalysis fetches the segment analysis of a track.
// Tracks the API refuses to analyse yield domain.ErrAnalysisUnavailable.
func (c *Client) GetAudioAnalysis(ctx context.Context, trackID string) (domain.TrackAnalysis, error) {
	analysisURL := fmt.Sprintf("%s/audio-analysis/%s", c.baseURL, url.PathEscape(trackID))

	resp, err := c.get(ctx, analysisURL)
	if err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("spotify adapter: analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusNotFound:
		log.Printf("WARN spotify adapter: analysis for track %s refused with status %d", trackID, resp.StatusCode)
		return domain.TrackAnalysis{}, fmt.Errorf("spotify adapter: track %s: %w", trackID, domain.ErrAnalysisUnavailable)
	default:
		return domain.TrackAnalysis{}, fmt.Errorf("spotify adapter: analysis status %d", resp.StatusCode)
	}

	analysis, err := DecodeAudioAnalysis(resp.Body)
	if err != nil {
		return domain.TrackAnalysis{}, err
	}
	analysis.TrackID = trackID

	log.Printf("DEBUG spotify adapter: analysis for %s has %d segments over %.1fs", trackID, len(analysis.Segments), analysis.Duration)
	return analysis, nil
}

// DecodeAudioAnalysis reads an audio-analysis JSON document. The returned
// analysis has no TrackID.
func DecodeAudioAnalysis(r io.Reader) (domain.TrackAnalysis, error) {
	var sa spotifyAudioAnalysis
	if err := json.NewDecoder(r).Decode(&sa); err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("spotify adapter: analysis decode error: %w", err)
	}
	return mapAnalysisToDomain("", sa), nil
}
