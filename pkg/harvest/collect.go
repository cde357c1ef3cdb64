package harvest

import (
	"context"
	"fmt"

	"hltvharvest/pkg/checkpoint"
)

// collect drives the paginated collection phase. Starting from the
// checkpoint cursor it fetches listing pages, deduplicates candidate
// records by identity key, and persists incrementally: both stores are
// durable before the cursor advances, so a crash between pages loses
// at most one page of work.
//
// A fetch or parse failure is terminal for the phase but not the run;
// the cursor is not advanced and whatever has been collected so far
// proceeds to enrichment. A non-nil error is returned only for
// persistence failures.
func (s *Session) collect(ctx context.Context, cp *checkpoint.Checkpoint, report *Report) (Outcome, error) {
	newSinceFlush := 0

	for cp.Cursor <= s.cfg.Harvest.MaxOffset {
		if s.expired(ctx) {
			s.logger.WarnWithFields("budget exceeded during collection", map[string]interface{}{
				"cursor": cp.Cursor,
			})
			return OutcomeTimeExpired, nil
		}

		// Politeness pause between page fetches. Plain serial
		// throttling, not a cancellation point.
		s.pagePause.Wait()

		url := s.extractor.ListingURL(cp.Cursor)
		s.logger.InfoWithFields("fetching results page", map[string]interface{}{
			"cursor": cp.Cursor,
			"url":    url,
		})

		html, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			// Interrupted mid-fetch: a clean early exit, not an
			// upstream failure. The cursor stays put for the next run.
			if ctx.Err() != nil {
				s.logger.WarnWithFields("collection interrupted mid-fetch", map[string]interface{}{
					"cursor": cp.Cursor,
				})
				return OutcomeTimeExpired, nil
			}
			s.logger.WithError(err).WithField("cursor", cp.Cursor).Error("page fetch failed, stopping collection")
			return OutcomeFetchFailed, nil
		}

		candidates, err := s.extractor.ExtractListing(html)
		if err != nil {
			s.logger.WithError(err).WithField("cursor", cp.Cursor).Error("page extraction failed, stopping collection")
			return OutcomeFetchFailed, nil
		}

		for _, candidate := range candidates {
			if s.seen[candidate.ID()] {
				continue
			}

			if s.teams != nil {
				if candidate.Team1 != "" {
					candidate.Team1ID = s.teams.Resolve(ctx, candidate.Team1)
				}
				if candidate.Team2 != "" {
					candidate.Team2ID = s.teams.Resolve(ctx, candidate.Team2)
				}
			}

			s.matches = append(s.matches, candidate)
			s.seen[candidate.ID()] = true
			report.NewMatches++
			newSinceFlush++

			if newSinceFlush >= s.cfg.Harvest.FlushThreshold {
				if err := s.flushProgress(cp); err != nil {
					return OutcomeAborted, err
				}
				newSinceFlush = 0
			}
		}

		// Persist the page's results and the advanced cursor before
		// moving on.
		cp.Cursor += s.cfg.Harvest.PageStride
		if err := s.flushProgress(cp); err != nil {
			return OutcomeAborted, err
		}
		newSinceFlush = 0
	}

	// The remote listing is a sliding recent-window view; once the
	// window is exhausted the next run re-scans it from the start.
	cp.Cursor = 0
	if err := s.checkpoints.Save(cp); err != nil {
		return OutcomeExhausted, fmt.Errorf("failed to save checkpoint after wraparound: %w", err)
	}

	return OutcomeExhausted, nil
}

// flushProgress makes the result set and checkpoint durable, in that
// order. Results first: an id referenced by the checkpoint must never
// be absent from the result set on disk.
func (s *Session) flushProgress(cp *checkpoint.Checkpoint) error {
	if err := s.store.Flush(s.matches); err != nil {
		return fmt.Errorf("failed to flush results: %w", err)
	}
	if err := s.checkpoints.Save(cp); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}
