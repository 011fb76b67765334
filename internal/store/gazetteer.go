package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/pkg/models"
)

// GazetteerStore reads the static place-name lookup table. Rows are
// returned in table order; lookup semantics (substring containment,
// first match wins) live in the in-memory index built on top.
type GazetteerStore struct {
	db     Querier
	logger *logrus.Logger
}

func NewGazetteerStore(db Querier, logger *logrus.Logger) *GazetteerStore {
	return &GazetteerStore{db: db, logger: logger}
}

// ListRegions returns every gazetteer row in iteration order.
func (s *GazetteerStore) ListRegions(ctx context.Context) ([]models.Region, error) {
	rows, err := s.db.Query(ctx,
		`SELECT district, neighborhood, latitude, longitude FROM gazetteer ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("gazetteer query failed: %w", err)
	}
	defer rows.Close()

	var out []models.Region
	for rows.Next() {
		var r models.Region
		if err := rows.Scan(&r.District, &r.Neighborhood, &r.Latitude, &r.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan gazetteer row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("gazetteer rows failed: %w", err)
	}
	return out, nil
}
