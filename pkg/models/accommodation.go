package models

import "github.com/kyteam/stayrank/internal/geo"

// Accommodation is a read-only catalog snapshot of one lodging entry.
// Latitude/Longitude may be absent for rows that were ingested without
// geocoding; such rows are skipped by any distance computation.
type Accommodation struct {
	ID        int64    `json:"id" db:"id"`
	Name      string   `json:"name" db:"name"`
	Address   string   `json:"address" db:"address"`
	Price     float64  `json:"price" db:"price"`
	Rating    float64  `json:"rating" db:"ranks"`
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// AvgReview is the mean of per-review scores, when any reviews exist.
	// It is blended into the final score at its own weight, alongside the
	// stored aggregate rating rather than replacing it.
	AvgReview *float64 `json:"avg_review,omitempty" db:"avg_review"`
}

// Coordinate returns the accommodation's position and whether one is set.
func (a *Accommodation) Coordinate() (geo.Coordinate, bool) {
	if a.Latitude == nil || a.Longitude == nil {
		return geo.Coordinate{}, false
	}
	return geo.Coordinate{Lat: *a.Latitude, Lon: *a.Longitude}, true
}

// Region is one gazetteer row mapping an administrative district and
// neighborhood name to a representative coordinate.
type Region struct {
	District     string  `json:"district" db:"district"`
	Neighborhood string  `json:"neighborhood" db:"neighborhood"`
	Latitude     float64 `json:"latitude" db:"latitude"`
	Longitude    float64 `json:"longitude" db:"longitude"`
}

// Coordinate returns the region's representative coordinate.
func (r *Region) Coordinate() geo.Coordinate {
	return geo.Coordinate{Lat: r.Latitude, Lon: r.Longitude}
}
