package store

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/pkg/models"
)

// PreferenceStore reads a user's previously liked accommodations. The
// result feeds the heuristic weight personalization only; an empty set
// is a normal outcome, not an error.
type PreferenceStore struct {
	db     Querier
	logger *logrus.Logger
}

func NewPreferenceStore(db Querier, logger *logrus.Logger) *PreferenceStore {
	return &PreferenceStore{db: db, logger: logger}
}

// LikedAccommodations returns the accommodations the user has liked, in
// like order.
func (s *PreferenceStore) LikedAccommodations(ctx context.Context, userID int64) ([]models.Accommodation, error) {
	query := `
	SELECT
		a.id,
		a.name,
		a.address,
		a.price,
		a.ranks,
		a.latitude,
		a.longitude,
		NULL::numeric AS avg_review
	FROM accommodations a
	JOIN accommodation_likes l ON l.accommodation_id = a.id
	WHERE l.user_id = $1
	ORDER BY l.id`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("liked accommodations query failed: %w", err)
	}
	defer rows.Close()

	return scanAccommodations(rows)
}
