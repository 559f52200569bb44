package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/pool"

	"github.com/mmcdole/marquee/internal/domain"
)

// MaxCast is the number of billed cast members shown with details
const MaxCast = 8

// DetailsService assembles the expanded view of a title
type DetailsService struct {
	client domain.DetailsClient
	logger *slog.Logger
}

// NewDetailsService creates a new details service
func NewDetailsService(client domain.DetailsClient, logger *slog.Logger) *DetailsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DetailsService{client: client, logger: logger}
}

// Get fetches details and credits concurrently. Either failing fails the
// whole lookup. People are not fetched; their list entry already carries
// what is shown.
func (s *DetailsService) Get(ctx context.Context, item domain.Item) (*domain.Details, error) {
	if item.MediaType == domain.MediaTypePerson {
		return &domain.Details{Item: item}, nil
	}

	var (
		details *domain.Details
		cast    []domain.CastMember
	)

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		d, err := s.client.GetDetails(ctx, item.MediaType, item.ID)
		if err != nil {
			return fmt.Errorf("details: %w", err)
		}
		details = d
		return nil
	})
	p.Go(func(ctx context.Context) error {
		c, err := s.client.GetCredits(ctx, item.MediaType, item.ID)
		if err != nil {
			return fmt.Errorf("credits: %w", err)
		}
		cast = c
		return nil
	})

	if err := p.Wait(); err != nil {
		s.logger.Error("failed to load details", "key", item.Key(), "error", err)
		return nil, err
	}

	if len(cast) > MaxCast {
		cast = cast[:MaxCast]
	}
	details.Cast = cast

	// Keep list-level fields the details endpoint may omit
	if details.ImagePath == "" {
		details.ImagePath = item.ImagePath
	}
	if details.Title == "" {
		details.Title = item.Title
	}

	s.logger.Debug("loaded details", "key", item.Key(), "cast", len(cast))
	return details, nil
}
