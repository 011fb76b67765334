// Package store contains the pgx-backed read adapters for the
// accommodation catalog, the likes history and the place-name gazetteer.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/pkg/models"
)

// Querier is the subset of pgxpool.Pool the stores need.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// CatalogStore reads accommodation snapshots. The engine treats the
// catalog as read-only except for the coordinate backfill, which callers
// persist explicitly after a successful geocode.
type CatalogStore struct {
	db     Querier
	logger *logrus.Logger
}

func NewCatalogStore(db Querier, logger *logrus.Logger) *CatalogStore {
	return &CatalogStore{db: db, logger: logger}
}

const accommodationColumns = `
	SELECT
		a.id,
		a.name,
		a.address,
		a.price,
		a.ranks,
		a.latitude,
		a.longitude,
		AVG(r.rating) AS avg_review
	FROM accommodations a
	LEFT JOIN reviews r ON r.accommodation_id = a.id`

// ListAccommodations returns the full candidate snapshot in catalog
// order, each row carrying its mean review score when reviews exist.
func (s *CatalogStore) ListAccommodations(ctx context.Context) ([]models.Accommodation, error) {
	query := accommodationColumns + `
	GROUP BY a.id, a.name, a.address, a.price, a.ranks, a.latitude, a.longitude
	ORDER BY a.id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	defer rows.Close()

	return scanAccommodations(rows)
}

// SearchByName returns accommodations whose name contains the given
// fragment, case-insensitively, in catalog order.
func (s *CatalogStore) SearchByName(ctx context.Context, name string) ([]models.Accommodation, error) {
	query := accommodationColumns + `
	WHERE a.name ILIKE '%' || $1 || '%'
	GROUP BY a.id, a.name, a.address, a.price, a.ranks, a.latitude, a.longitude
	ORDER BY a.id`

	rows, err := s.db.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("catalog name search failed: %w", err)
	}
	defer rows.Close()

	return scanAccommodations(rows)
}

// UpdateCoordinates persists a geocoded position for one accommodation.
// The route-estimate handler calls this after a backfill; the ranking
// engine itself never writes.
func (s *CatalogStore) UpdateCoordinates(ctx context.Context, id int64, coord geo.Coordinate) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE accommodations SET latitude = $2, longitude = $3 WHERE id = $1`,
		id, coord.Lat, coord.Lon)
	if err != nil {
		return fmt.Errorf("coordinate update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("coordinate update affected no rows for id %d", id)
	}
	return nil
}

func scanAccommodations(rows pgx.Rows) ([]models.Accommodation, error) {
	var out []models.Accommodation
	for rows.Next() {
		var a models.Accommodation
		if err := rows.Scan(&a.ID, &a.Name, &a.Address, &a.Price, &a.Rating,
			&a.Latitude, &a.Longitude, &a.AvgReview); err != nil {
			return nil, fmt.Errorf("failed to scan accommodation row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("accommodation rows failed: %w", err)
	}
	return out, nil
}
