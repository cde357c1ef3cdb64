package harvest

import (
	"context"
	"fmt"
	"time"

	"hltvharvest/pkg/checkpoint"
	"hltvharvest/pkg/config"
	"hltvharvest/pkg/logger"
	"hltvharvest/pkg/models"
	"hltvharvest/pkg/ratelimit"
	"hltvharvest/pkg/results"
)

// Outcome is the terminal state of the collection phase
type Outcome string

const (
	// OutcomeExhausted means the pagination window was fully scanned
	OutcomeExhausted Outcome = "exhausted"
	// OutcomeTimeExpired means the wall-clock budget ran out
	OutcomeTimeExpired Outcome = "time_expired"
	// OutcomeFetchFailed means a page fetch failed after retries
	OutcomeFetchFailed Outcome = "fetch_failed"
	// OutcomeAborted means the phase stopped on a persistence failure
	OutcomeAborted Outcome = "aborted"
)

// Report summarizes a completed run
type Report struct {
	Outcome      Outcome
	NewMatches   int
	Enriched     int
	EnrichFailed int
	Total        int
}

// Session orchestrates one harvest run: the paginated collection phase
// followed by the per-record enrichment pass. Execution is fully
// sequential; one fetch is in flight at a time.
type Session struct {
	fetcher     Fetcher
	extractor   Extractor
	teams       TeamResolver
	checkpoints *checkpoint.Manager
	store       *results.Store
	pagePause   ratelimit.Limiter
	enrichPause ratelimit.Limiter
	cfg         *config.Config
	logger      logger.Logger

	// now is injectable for budget tests
	now       func() time.Time
	startTime time.Time

	matches []*models.Match
	seen    map[string]bool
}

// NewSession creates a harvest session from its collaborators
func NewSession(cfg *config.Config, fetcher Fetcher, extractor Extractor, teams TeamResolver,
	checkpoints *checkpoint.Manager, store *results.Store, log logger.Logger) *Session {

	if log == nil {
		log = logger.GetLogger()
	}

	return &Session{
		fetcher:     fetcher,
		extractor:   extractor,
		teams:       teams,
		checkpoints: checkpoints,
		store:       store,
		pagePause:   ratelimit.NewInterval(cfg.Harvest.PageDelay),
		enrichPause: ratelimit.NewInterval(cfg.Enrich.Delay),
		cfg:         cfg,
		logger:      log,
		now:         time.Now,
	}
}

// Run executes one full harvest: load state, collect, enrich, and a
// final unconditional flush of both stores. Fetch and parse errors are
// contained; a persistence error halts the run after a best-effort
// final save and is returned to the caller.
func (s *Session) Run(ctx context.Context) (*Report, error) {
	s.startTime = s.now()

	cp, err := s.checkpoints.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	// The result set is the source of truth for identity membership;
	// seen ids are rebuilt from it on every run.
	s.matches = s.store.LoadAll()
	s.seen = make(map[string]bool, len(s.matches))
	for _, match := range s.matches {
		s.seen[match.ID()] = true
	}

	s.logger.InfoWithFields("harvest run starting", map[string]interface{}{
		"cursor":   cp.Cursor,
		"known":    len(s.matches),
		"enriched": len(cp.Enriched),
		"budget":   s.cfg.Harvest.Budget,
	})

	report := &Report{}

	outcome, collectErr := s.collect(ctx, cp, report)
	report.Outcome = outcome

	s.logger.InfoWithFields("collection phase finished", map[string]interface{}{
		"outcome":     string(outcome),
		"new_matches": report.NewMatches,
		"total":       len(s.matches),
	})

	var enrichErr error
	if collectErr == nil {
		enrichErr = s.enrich(ctx, cp, report)
	}

	// Final unconditional flush of both stores, even on error paths.
	flushErr := s.store.Flush(s.matches)
	saveErr := s.checkpoints.Save(cp)

	report.Total = len(s.matches)

	for _, err := range []error{collectErr, enrichErr, flushErr, saveErr} {
		if err != nil {
			return report, err
		}
	}

	s.logger.InfoWithFields("harvest run completed", map[string]interface{}{
		"outcome":       string(report.Outcome),
		"new_matches":   report.NewMatches,
		"enriched":      report.Enriched,
		"enrich_failed": report.EnrichFailed,
		"total":         report.Total,
	})

	return report, nil
}

// expired reports whether the run should stop at this boundary, either
// because the wall-clock budget is spent or the context was cancelled
// (e.g. by an interrupt signal).
func (s *Session) expired(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return s.now().Sub(s.startTime) >= s.cfg.Harvest.Budget
}
