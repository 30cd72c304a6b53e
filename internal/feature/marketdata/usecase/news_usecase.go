package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"fynix_backend/internal/feature/marketdata/domain"
	"fynix_backend/internal/feature/marketdata/domain/entity"
)

// DefaultNewsLimit is the number of articles returned when the caller does
// not specify one.
const DefaultNewsLimit = 20

// NewsProvider abstracts one external news source. Interface defined by the
// consumer (usecase), implemented by the adapters.
type NewsProvider interface {
	// Name returns the provider identifier for logging.
	Name() string
	// FetchNews returns up to limit articles about symbol, an empty slice
	// when the provider has nothing, or an error when it is unusable.
	FetchNews(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error)
}

// newsUsecase walks an ordered news-provider chain until one yields data.
type newsUsecase struct {
	chain                   []NewsProvider
	returnEmptyOnExhaustion bool
}

// NewNewsUsecase creates the news fallback orchestrator with the same
// exhaustion policy semantics as the OHLC one.
func NewNewsUsecase(chain []NewsProvider, returnEmptyOnExhaustion bool) *newsUsecase {
	return &newsUsecase{chain: chain, returnEmptyOnExhaustion: returnEmptyOnExhaustion}
}

// GetNews fetches up to limit news items for symbol, first success wins.
func (u *newsUsecase) GetNews(ctx context.Context, symbol string, limit int) ([]entity.NewsItem, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}

	for _, p := range u.chain {
		items, err := p.FetchNews(ctx, symbol, limit)
		if err != nil {
			slog.Warn("news provider failed, trying next", "provider", p.Name(), "symbol", symbol, "error", err)
			continue
		}
		if len(items) == 0 {
			continue
		}
		if len(items) > limit {
			items = items[:limit]
		}
		return items, nil
	}

	if u.returnEmptyOnExhaustion {
		return []entity.NewsItem{}, nil
	}
	return nil, fmt.Errorf("%w: news for %s", domain.ErrAllProvidersExhausted, symbol)
}
