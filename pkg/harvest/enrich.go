package harvest

import (
	"context"
	"fmt"

	"hltvharvest/pkg/checkpoint"
	"hltvharvest/pkg/models"
)

// enrich runs the per-record detail-fetch pass over the result set in
// original order. One record's permanent failure never aborts the
// pass: failed records are flagged and retained, the checkpoint is
// saved immediately, and iteration continues. Progress is flushed at a
// fixed cadence rather than per record, trading a little re-work on
// crash for less I/O. A non-nil error is returned only for persistence
// failures.
func (s *Session) enrich(ctx context.Context, cp *checkpoint.Checkpoint, report *Report) error {
	successes := 0

	for _, match := range s.matches {
		if cp.IsEnriched(match.ID()) || match.EnrichFailed {
			continue
		}

		if s.expired(ctx) {
			s.logger.WarnWithFields("budget exceeded during enrichment", map[string]interface{}{
				"remaining_match": match.MatchID,
			})
			break
		}

		s.enrichPause.Wait()

		s.logger.InfoWithFields("enriching match", map[string]interface{}{
			"match_id": match.MatchID,
			"url":      match.URL,
		})

		html, err := s.fetcher.Fetch(ctx, match.URL)
		if err != nil {
			// A cancelled context means the run is being interrupted,
			// not that the record is bad. Leave it un-flagged so the
			// next run retries it.
			if ctx.Err() != nil {
				s.logger.WarnWithFields("enrichment interrupted mid-fetch", map[string]interface{}{
					"match_id": match.MatchID,
				})
				break
			}
			if err := s.markFailed(cp, match); err != nil {
				return err
			}
			report.EnrichFailed++
			continue
		}

		detail, err := s.extractor.ExtractDetail(html)
		if err != nil {
			s.logger.WithError(err).WithField("match_id", match.MatchID).Warn("detail extraction failed")
			if err := s.markFailed(cp, match); err != nil {
				return err
			}
			report.EnrichFailed++
			continue
		}

		match.Format = detail.Format
		match.Stage = detail.Stage
		match.Veto = detail.Veto
		match.Maps = detail.Maps

		stats := s.extractor.ExtractPlayerStats(html)
		for i := range match.Maps {
			if players, ok := stats[match.Maps[i].Map]; ok {
				match.Maps[i].Players = players
			}
		}

		cp.MarkEnriched(match.ID())
		report.Enriched++
		successes++

		if successes%s.cfg.Enrich.FlushEvery == 0 {
			if err := s.flushProgress(cp); err != nil {
				return err
			}
		}
	}

	return nil
}

// markFailed flags a record as permanently failed and makes the
// checkpoint durable right away. The record is retained with whatever
// partial data it has.
func (s *Session) markFailed(cp *checkpoint.Checkpoint, match *models.Match) error {
	match.EnrichFailed = true
	if err := s.checkpoints.Save(cp); err != nil {
		return fmt.Errorf("failed to save checkpoint after enrich failure: %w", err)
	}
	return nil
}
