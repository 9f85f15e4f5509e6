package analyses

import "context"

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	// List returns analyses newest first.
	List(ctx context.Context, limit, offset int) ([]Analysis, error)
}
