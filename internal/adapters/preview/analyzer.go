// Package preview derives a segment analysis from a track's MP3 preview clip,
// used when the analysis service will not analyse a track.
package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/ports"
	"github.com/hajimehoshi/go-mp3"
)

const (
	// DefaultWindow is the length of one derived segment.
	DefaultWindow = 250 * time.Millisecond
	// silenceDB is reported for windows with no signal.
	silenceDB = -60.0

	bytesPerFrame = 4 // go-mp3 emits 16-bit little-endian stereo
	fullScale     = 32768.0
)

// Analyzer fetches and decodes preview clips.
type Analyzer struct {
	client *http.Client
	window time.Duration
}

var _ ports.PreviewAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates an Analyzer. A nil client gets a 15 second timeout.
func NewAnalyzer(client *http.Client, window time.Duration) *Analyzer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Analyzer{client: client, window: window}
}

// AnalyzePreview downloads the clip at previewURL and cuts it into fixed
// windows, each reported with its peak level in dBFS as loudness_max.
func (a *Analyzer) AnalyzePreview(ctx context.Context, previewURL string) (domain.TrackAnalysis, error) {
	if previewURL == "" {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: %w: track has no preview", domain.ErrAnalysisUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, previewURL, nil)
	if err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: fetch status %d", resp.StatusCode)
	}

	decoder, err := mp3.NewDecoder(resp.Body)
	if err != nil {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: decode failed: %w", err)
	}

	return segmentsFromPCM(decoder, decoder.SampleRate(), a.window)
}

// segmentsFromPCM reads 16-bit stereo PCM and emits one contiguous segment per window.
func segmentsFromPCM(r io.Reader, sampleRate int, window time.Duration) (domain.TrackAnalysis, error) {
	if sampleRate <= 0 {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: invalid sample rate %d", sampleRate)
	}

	framesPerWindow := int(window.Seconds() * float64(sampleRate))
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}

	rate := float64(sampleRate)
	buf := make([]byte, framesPerWindow*bytesPerFrame)
	analysis := domain.TrackAnalysis{Source: domain.SourcePreview}
	totalFrames := 0

	for {
		n, err := io.ReadFull(r, buf)
		frames := n / bytesPerFrame
		if frames > 0 {
			analysis.Segments = append(analysis.Segments, domain.RawSegment{
				Start:       float64(totalFrames) / rate,
				Duration:    float64(frames) / rate,
				LoudnessMax: peakDB(buf[:frames*bytesPerFrame]),
			})
			totalFrames += frames
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: read failed: %w", err)
		}
	}

	if totalFrames == 0 {
		return domain.TrackAnalysis{}, fmt.Errorf("preview analyzer: preview contains no samples")
	}

	analysis.Duration = float64(totalFrames) / rate
	return analysis, nil
}

func peakDB(pcm []byte) float64 {
	peak := 0
	for i := 0; i+1 < len(pcm); i += 2 {
		sample := int(int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8))
		if sample < 0 {
			sample = -sample
		}
		if sample > peak {
			peak = sample
		}
	}

	if peak == 0 {
		return silenceDB
	}
	return math.Max(20*math.Log10(float64(peak)/fullScale), silenceDB)
}
