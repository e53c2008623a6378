package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

// GetTrack fetches track metadata, including the preview clip URL.
func (c *Client) GetTrack(ctx context.Context, trackID string) (domain.Track, error) {
	trackURL := fmt.Sprintf("%s/tracks/%s", c.baseURL, url.PathEscape(trackID))

	resp, err := c.get(ctx, trackURL)
	if err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: track request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.Track{}, fmt.Errorf("spotify adapter: track %s: %w", trackID, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Track{}, fmt.Errorf("spotify adapter: track status %d", resp.StatusCode)
	}

	var st spotifyTrack
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return domain.Track{}, fmt.Errorf("spotify adapter: track decode error: %w", err)
	}

	return mapTrackToDomain(st), nil
}
