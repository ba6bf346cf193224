package ports

import (
	"context"

	"go.trai.ch/tome/internal/core/domain"
)

// Finisher is a step run once all documents are processed and validated,
// e.g. writing the search index or copying static assets.
//
//go:generate mockgen -source=finisher.go -destination=mocks/mock_finisher.go -package=mocks
type Finisher interface {
	Name() string
	Finish(ctx context.Context, site *domain.Site) error
}
