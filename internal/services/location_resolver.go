package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/geo"
)

// Administrative suffixes marking a token as a place-name candidate.
const (
	districtSuffix     = "구"
	neighborhoodSuffix = "동"
)

// ResolvedLocation is the coordinate a ranking run is computed against.
// Matched is false when the configured default coordinate was used.
// SourceToken carries the suffix-stripped place token, which later feeds
// the region boost.
type ResolvedLocation struct {
	Coordinate  geo.Coordinate
	SourceToken string
	Matched     bool
}

// LocationResolver turns free text or an explicit coordinate into a
// single resolved coordinate.
//
// Text resolution is deliberately first-match, not best-match: tokens
// are tried in tokenization order and the first gazetteer hit wins.
// Ranking among multiple plausible place names is out of scope for this
// resolver.
type LocationResolver struct {
	tokenizer Tokenizer
	gazetteer *GazetteerIndex
	logger    *logrus.Logger
}

func NewLocationResolver(tokenizer Tokenizer, gazetteer *GazetteerIndex, logger *logrus.Logger) *LocationResolver {
	return &LocationResolver{
		tokenizer: tokenizer,
		gazetteer: gazetteer,
		logger:    logger,
	}
}

// Resolve applies the precedence explicit coordinate → text resolution →
// fallback. It never fails: tokenizer or gazetteer misses degrade to the
// fallback coordinate with Matched=false.
func (r *LocationResolver) Resolve(ctx context.Context, freeText string, explicit *geo.Coordinate, fallback geo.Coordinate) ResolvedLocation {
	if explicit != nil {
		if err := explicit.Validate(); err == nil {
			return ResolvedLocation{Coordinate: *explicit, Matched: true}
		}
		r.logger.WithFields(logrus.Fields{
			"lat": explicit.Lat,
			"lon": explicit.Lon,
		}).Warn("Ignoring malformed explicit coordinate")
	}

	if freeText != "" {
		if loc, ok := r.resolveText(ctx, freeText); ok {
			return loc
		}
	}

	return ResolvedLocation{Coordinate: fallback, Matched: false}
}

func (r *LocationResolver) resolveText(ctx context.Context, freeText string) (ResolvedLocation, bool) {
	tokens, err := r.tokenizer.Tokenize(ctx, freeText)
	if err != nil {
		// An unavailable tokenizer means zero tokens, never a request
		// failure.
		r.logger.WithError(err).Warn("Tokenizer unavailable, falling back to default location")
		return ResolvedLocation{}, false
	}

	for _, token := range tokens {
		switch {
		case strings.HasSuffix(token, districtSuffix):
			base := strings.TrimSuffix(token, districtSuffix)
			if coord, ok := r.gazetteer.FindDistrict(base); ok {
				return ResolvedLocation{Coordinate: coord, SourceToken: base, Matched: true}, true
			}
		case strings.HasSuffix(token, neighborhoodSuffix):
			base := strings.TrimSuffix(token, neighborhoodSuffix)
			if coord, ok := r.gazetteer.FindNeighborhood(base); ok {
				return ResolvedLocation{Coordinate: coord, SourceToken: base, Matched: true}, true
			}
		}
	}

	return ResolvedLocation{}, false
}
