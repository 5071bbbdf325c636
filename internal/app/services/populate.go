package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/fr0stylo/gamecatalog/internal/app/domain"
	"github.com/fr0stylo/gamecatalog/internal/app/ports"
	"github.com/fr0stylo/gamecatalog/internal/observability"
)

const (
	// DefaultTopN is how many ranked candidates a populate run considers.
	DefaultTopN = 100

	populateCompleteMessage = "Population complete"
)

// PopulateConfig configures the populate pipeline.
type PopulateConfig struct {
	// Sources are fetched concurrently. Their order is the tie-break order for equal scores.
	Sources []ports.FeedSource
	TopN    int
}

// PopulateService fetches the store feeds, ranks their entries and inserts
// the best ones that are not stored yet.
type PopulateService struct {
	store   ports.GameStore
	fetcher ports.FeedFetcher
	sources []ports.FeedSource
	topN    int
	log     *slog.Logger
	metrics populateMetrics
}

type feedOutcome struct {
	source ports.FeedSource
	feed   any
	err    error
}

// NewPopulateService constructs the populate pipeline. It fails with
// ErrNoFeedSources when cfg lists no source.
func NewPopulateService(store ports.GameStore, fetcher ports.FeedFetcher, cfg PopulateConfig, log *slog.Logger) (*PopulateService, error) {
	if len(cfg.Sources) == 0 {
		return nil, ErrNoFeedSources
	}
	if log == nil {
		log = slog.Default()
	}
	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &PopulateService{
		store:   store,
		fetcher: fetcher,
		sources: cfg.Sources,
		topN:    topN,
		log:     log,
		metrics: newPopulateMetrics(),
	}, nil
}

// Populate runs the pipeline once. It fails with *SourcesFailedError when no
// source could be fetched; per-record write failures only lower the created count.
func (s *PopulateService) Populate(ctx context.Context) (domain.PopulateSummary, error) {
	ctx, span := observability.StartSpan(ctx, "populate.run")
	defer span.End()
	started := time.Now()

	outcomes := s.fetchAll(ctx)

	warnings := lo.FilterMap(outcomes, func(outcome feedOutcome, _ int) (string, bool) {
		if outcome.err == nil {
			return "", false
		}
		return fmt.Sprintf("%s: %v", outcome.source.Platform, outcome.err), true
	})
	fetched := lo.Filter(outcomes, func(outcome feedOutcome, _ int) bool {
		return outcome.err == nil
	})
	if len(fetched) == 0 {
		err := &SourcesFailedError{Warnings: warnings}
		s.log.ErrorContext(ctx, "Populate aborted, no feed could be fetched", "warnings", strings.Join(warnings, "; "))
		s.metrics.recordRun(ctx, "sources_failed", time.Since(started))
		span.RecordError(err)
		return domain.PopulateSummary{}, err
	}
	for _, warning := range warnings {
		s.log.WarnContext(ctx, "Feed source skipped", "warning", warning)
	}

	candidates := make([]domain.Candidate, 0)
	for _, outcome := range fetched {
		normalized := NormalizeAll(outcome.feed, outcome.source.Platform)
		s.metrics.recordCandidates(ctx, outcome.source.Platform, len(normalized))
		s.log.DebugContext(ctx, "Feed normalized", "platform", outcome.source.Platform, "candidates", len(normalized))
		candidates = append(candidates, normalized...)
	}

	top := RankTop(candidates, s.topN)

	created, err := s.persist(ctx, top)
	if err != nil {
		s.metrics.recordRun(ctx, "failed", time.Since(started))
		span.RecordError(err)
		return domain.PopulateSummary{}, err
	}

	if warnings == nil {
		warnings = []string{}
	}
	summary := domain.PopulateSummary{
		Message:  populateCompleteMessage,
		Created:  created,
		Skipped:  len(top) - created,
		Warnings: warnings,
	}
	s.metrics.recordRun(ctx, "completed", time.Since(started))
	s.log.InfoContext(ctx, "Populate completed",
		"candidates", len(candidates),
		"considered", len(top),
		"created", summary.Created,
		"skipped", summary.Skipped,
		"warnings", len(warnings),
	)
	return summary, nil
}

func (s *PopulateService) fetchAll(ctx context.Context) []feedOutcome {
	outcomes := make([]feedOutcome, len(s.sources))
	var wg sync.WaitGroup
	for index, source := range s.sources {
		wg.Go(func() {
			feed, err := s.fetcher.Fetch(ctx, source.URL)
			s.metrics.recordFetch(ctx, source.Platform, err)
			outcomes[index] = feedOutcome{source: source, feed: feed, err: err}
		})
	}
	wg.Wait()
	return outcomes
}

// persist reads the existing keys once, then writes unseen candidates in rank order.
// Concurrent runs are not coordinated; both may insert the same key.
func (s *PopulateService) persist(ctx context.Context, top []domain.Candidate) (int, error) {
	existing, err := s.store.ListKeys(ctx)
	if err != nil {
		return 0, fmt.Errorf("list existing game keys: %w", err)
	}
	seen := make(map[domain.GameKey]struct{}, len(existing)+len(top))
	for _, key := range existing {
		seen[key] = struct{}{}
	}

	created := 0
	for _, candidate := range top {
		key := candidate.Game.Key()
		if _, duplicate := seen[key]; duplicate {
			s.metrics.recordOutcome(ctx, key.Platform, "duplicate")
			continue
		}
		seen[key] = struct{}{}

		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("populate interrupted: %w", err)
		}
		if _, err := s.store.Create(ctx, candidate.Game); err != nil {
			failure := PersistenceError{Key: key, Err: err}
			s.metrics.recordOutcome(ctx, key.Platform, "failed")
			s.log.WarnContext(ctx, "Failed to persist candidate", "game", key.String(), "score", candidate.Score, "error", failure)
			continue
		}
		s.metrics.recordOutcome(ctx, key.Platform, "created")
		created++
	}
	return created, nil
}
