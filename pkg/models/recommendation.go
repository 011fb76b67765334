package models

import "time"

// RecommendationRequest carries the free-text and/or explicit location a
// user supplied, plus optional personalization and bounds.
type RecommendationRequest struct {
	FreeText         string     `json:"free_text,omitempty"`
	ExplicitLocation *[2]float64 `json:"explicit_location,omitempty"` // [lat, lon]
	UserID           *int64     `json:"user_id,omitempty"`
	MaxDistanceKm    *float64   `json:"max_distance_km,omitempty" binding:"omitempty,gt=0"`
	Count            int        `json:"count,omitempty" binding:"omitempty,min=0,max=100"`
}

// RecommendedAccommodation is one entry of the ordered response list.
type RecommendedAccommodation struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Rating     float64 `json:"rating"`
	Address    string  `json:"address"`
	FinalScore float64 `json:"final_score"`
}

// RecommendationResponse is the ordered, bounded recommendation list.
type RecommendationResponse struct {
	Recommendations []RecommendedAccommodation `json:"recommendations"`
	ResolvedLat     float64                    `json:"resolved_lat"`
	ResolvedLon     float64                    `json:"resolved_lon"`
	LocationMatched bool                       `json:"location_matched"`
	GeneratedAt     time.Time                  `json:"generated_at"`
	CacheHit        bool                       `json:"cache_hit"`
}

// ScoredAccommodation is the enriched per-candidate record produced while
// ranking. It lives only inside one request.
type ScoredAccommodation struct {
	Accommodation      Accommodation `json:"accommodation"`
	DistanceKm         float64       `json:"distance_km"`
	NormalizedDistance float64       `json:"normalized_distance"`
	NormalizedPrice    float64       `json:"normalized_price"`
	RegionBoost        float64       `json:"region_boost"` // 0 or 1
	FinalScore         float64       `json:"final_score"`
}
