package orders

import (
	"MerchantBot/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
)

// CounterRepository supplies the atomic per-tag allocate operation.
type CounterRepository interface {
	AllocateCounter(ctx context.Context, tag string) (int64, error)
}

// Service builds external order identifiers from per-tag monotonic counters.
type Service struct {
	repo        CounterRepository
	fallbackTag string
	log         *slog.Logger
}

// NewService creates the allocator. fallbackTag scopes allocations for
// merchants without a configured order id tag.
func NewService(repo CounterRepository, fallbackTag string, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		fallbackTag: fallbackTag,
		log:         log.With(sl.Module("orders")),
	}
}

// NextOrderID allocates the next identifier for a tag. The returned id is
// "{tag}_{counter}" and is unique for the tag's lifetime.
func (s *Service) NextOrderID(ctx context.Context, tag string) (string, error) {
	if tag == "" {
		tag = s.fallbackTag
	}

	counter, err := s.repo.AllocateCounter(ctx, tag)
	if err != nil {
		s.log.Error("allocating order counter", slog.String("tag", tag), sl.Err(err))
		return "", fmt.Errorf("allocating counter for %q: %w", tag, err)
	}

	return fmt.Sprintf("%s_%d", tag, counter), nil
}
