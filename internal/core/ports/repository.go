package ports

import (
	"context"

	"github.com/ewilliams-labs/seekwave/internal/core/domain"
)

type AnalysisRepository interface {
	GetAnalysis(ctx context.Context, trackID string) (domain.TrackAnalysis, error)
	SaveAnalysis(ctx context.Context, a domain.TrackAnalysis) error
}

type TokenStore interface {
	LoadToken(ctx context.Context, key string) (domain.AccessToken, error)
	SaveToken(ctx context.Context, key string, tok domain.AccessToken) error
}
