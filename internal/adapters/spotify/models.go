package spotify

// spotifyAudioAnalysis is the subset of GET /audio-analysis/{id} the waveform needs.
type spotifyAudioAnalysis struct {
	Track struct {
		Duration float64 `json:"duration"`
	} `json:"track"`
	Segments []spotifySegment `json:"segments"`
}

type spotifySegment struct {
	Start       float64 `json:"start"`
	Duration    float64 `json:"duration"`
	LoudnessMax float64 `json:"loudness_max"`
}

type spotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// spotifyTrack represents the Spotify API response for a track.
type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	DurationMs int             `json:"duration_ms"`
	PreviewURL string          `json:"preview_url"`
	Artists    []spotifyArtist `json:"artists"`
}
