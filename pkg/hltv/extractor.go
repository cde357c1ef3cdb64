package hltv

import (
	"fmt"
	"strings"
	"time"

	errs "hltvharvest/pkg/errors"
	"hltvharvest/pkg/logger"
)

// Extractor turns fetched HLTV documents into records. The harvest
// engine treats it as opaque: it only requires that a stable identity
// key is derivable from every listing record.
type Extractor struct {
	baseURL   string
	hltvZone  *time.Location
	localZone *time.Location
	logger    logger.Logger
}

// NewExtractor creates an extractor. timezone is the zone HLTV renders
// listing dates in (the site follows its cookie timezone).
func NewExtractor(baseURL, timezone string, log logger.Logger) (*Extractor, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	zone, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}

	return &Extractor{
		baseURL:   strings.TrimRight(baseURL, "/"),
		hltvZone:  zone,
		localZone: time.Local,
		logger:    log,
	}, nil
}

// ListingURL returns the results listing url for a pagination offset
func (e *Extractor) ListingURL(offset int) string {
	return fmt.Sprintf("%s/results?offset=%d", e.baseURL, offset)
}

// TeamStatsURL returns the team overview url used by the team directory
func (e *Extractor) TeamStatsURL() string {
	return fmt.Sprintf("%s/stats/teams?minMapCount=0", e.baseURL)
}

// parseError builds a Parse-Shape error for a missing structure
func parseError(what string) error {
	return &errs.Error{
		Type:    errs.ErrorTypeParsing,
		Message: fmt.Sprintf("expected structure absent: %s", what),
	}
}
