package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Track represents a musical track in the domain layer.
type Track struct {
	ID         string
	Title      string
	Artist     string
	DurationMs int
	PreviewURL string // 30 second MP3 clip, may be empty
}

// AccessToken is a bearer token issued by the analysis service.
type AccessToken struct {
	Value  string
	Type   string
	Expiry time.Time
}

// Valid reports whether the token can still be used at now.
func (t AccessToken) Valid(now time.Time) bool {
	if t.Value == "" {
		return false
	}
	return t.Expiry.IsZero() || now.Before(t.Expiry)
}

// ParseTrackID extracts the track ID from a bare ID, a "spotify:track:ID" URI
// (optionally URL-encoded, as found in the player's now-playing link) or an
// open.spotify.com track URL.
func ParseTrackID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("domain: empty track reference")
	}

	// now-playing links carry the URI URL-encoded; the ID follows the last ':'
	if i := strings.LastIndex(strings.ToUpper(ref), "%3A"); i >= 0 {
		return checkTrackID(ref[i+3:])
	}

	if strings.Contains(ref, "://") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", fmt.Errorf("domain: invalid track url: %w", err)
		}
		if uri := u.Query().Get("uri"); uri != "" {
			return ParseTrackID(uri)
		}
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(parts) >= 2 && parts[len(parts)-2] == "track" {
			return checkTrackID(parts[len(parts)-1])
		}
		return "", fmt.Errorf("domain: no track id in %q", ref)
	}

	if i := strings.LastIndex(ref, ":"); i >= 0 {
		if !strings.HasPrefix(ref, "spotify:track:") {
			return "", fmt.Errorf("domain: not a track uri %q", ref)
		}
		ref = ref[i+1:]
	}

	return checkTrackID(ref)
}

func checkTrackID(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("domain: empty track id")
	}
	for _, r := range id {
		isAlnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlnum {
			return "", fmt.Errorf("domain: invalid track id %q", id)
		}
	}
	return id, nil
}
