package rest

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/waveform"
)

const (
	formatPNG     = "png"
	formatDataURL = "dataurl"

	errCodeInvalidParameters = "INVALID_PARAMETERS"
	errCodeNotFound          = "NOT_FOUND"
	errCodeUnavailable       = "ANALYSIS_UNAVAILABLE"
	errCodeMalformed         = "MALFORMED_SEGMENTS"
	errCodeDegenerate        = "DEGENERATE_LOUDNESS"
	errCodeUpstream          = "UPSTREAM_ERROR"
)

// sourceHeader tells clients whether a waveform covers the whole track or
// only its preview excerpt.
const sourceHeader = "X-Waveform-Source"

type profileResponse struct {
	TrackID string                `json:"track_id"`
	Source  domain.AnalysisSource `json:"source"`
	Samples []float64             `json:"samples"`
}

type prefetchResponse struct {
	JobID   string `json:"job_id"`
	TrackID string `json:"track_id"`
}

// GetWaveform handles GET /tracks/{id}/waveform
func (h *Handler) GetWaveform(w http.ResponseWriter, r *http.Request) {
	trackID, ok := pathTrackID(w, r)
	if !ok {
		return
	}

	params, err := parseRenderParameters(r)
	if err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidParameters)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatPNG
	}
	if format != formatPNG && format != formatDataURL {
		writeErrorWithCode(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format), errCodeInvalidParameters)
		return
	}

	img, source, err := h.svc.RenderWaveform(r.Context(), trackID, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set(sourceHeader, string(source))

	if format == formatDataURL {
		url, err := waveform.EncodeDataURL(img)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(url)); err != nil {
			log.Printf("WARN rest: failed to write data url: %v", err)
		}
		return
	}

	body, err := waveform.EncodePNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("WARN rest: failed to write png: %v", err)
	}
}

// GetProfile handles GET /tracks/{id}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	trackID, ok := pathTrackID(w, r)
	if !ok {
		return
	}

	profile, source, err := h.svc.Profile(r.Context(), trackID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set(sourceHeader, string(source))
	writeJSON(w, http.StatusOK, profileResponse{TrackID: trackID, Source: source, Samples: profile.Samples()})
}

// Prefetch handles POST /tracks/{id}/prefetch
func (h *Handler) Prefetch(w http.ResponseWriter, r *http.Request) {
	trackID, ok := pathTrackID(w, r)
	if !ok {
		return
	}

	if h.pool == nil {
		writeError(w, http.StatusServiceUnavailable, "prefetching is disabled")
		return
	}

	job, accepted := h.pool.Submit(trackID)
	if !accepted {
		writeError(w, http.StatusServiceUnavailable, "prefetch queue is full")
		return
	}

	writeJSON(w, http.StatusAccepted, prefetchResponse{JobID: job.ID, TrackID: job.TrackID})
}

// pathTrackID accepts bare ids as well as URL-encoded track URIs and links.
func pathTrackID(w http.ResponseWriter, r *http.Request) (string, bool) {
	trackID, err := domain.ParseTrackID(r.PathValue("id"))
	if err != nil {
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidParameters)
		return "", false
	}
	return trackID, true
}

// parseRenderParameters reads width, height and color. Missing values stay
// zero so the service can apply its defaults.
func parseRenderParameters(r *http.Request) (domain.RenderParameters, error) {
	q := r.URL.Query()
	params := domain.RenderParameters{Color: q.Get("color")}

	var err error
	if params.Width, err = queryInt(q.Get("width"), "width"); err != nil {
		return domain.RenderParameters{}, err
	}
	if params.Height, err = queryInt(q.Get("height"), "height"); err != nil {
		return domain.RenderParameters{}, err
	}
	return params, nil
}

func queryInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRenderParameters):
		writeErrorWithCode(w, http.StatusBadRequest, err.Error(), errCodeInvalidParameters)
	case errors.Is(err, domain.ErrNotFound):
		writeErrorWithCode(w, http.StatusNotFound, err.Error(), errCodeNotFound)
	case errors.Is(err, domain.ErrAnalysisUnavailable):
		writeErrorWithCode(w, http.StatusNotFound, err.Error(), errCodeUnavailable)
	case errors.Is(err, domain.ErrMalformedSegments):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeMalformed)
	case errors.Is(err, domain.ErrDegenerateLoudness):
		writeErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), errCodeDegenerate)
	default:
		log.Printf("WARN rest: upstream failure: %v", err)
		writeErrorWithCode(w, http.StatusBadGateway, err.Error(), errCodeUpstream)
	}
}
