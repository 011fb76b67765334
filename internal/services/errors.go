package services

import "errors"

// Terminal conditions surfaced to callers. Resolver and personalization
// failures are absorbed internally and never reach this taxonomy.
var (
	// ErrNoCandidatesAtAll means the catalog produced zero geocoded
	// accommodations; widening the radius cannot help.
	ErrNoCandidatesAtAll = errors.New("no geocoded accommodations available")

	// ErrNoCandidatesInRange means candidates exist but none lie within
	// the requested distance bound; callers may suggest a wider radius.
	ErrNoCandidatesInRange = errors.New("no accommodations within the distance bound")

	// ErrAccommodationNotFound means no catalog row matched the
	// requested name.
	ErrAccommodationNotFound = errors.New("accommodation not found")

	// ErrGeolocationUnavailable means the named accommodation has no
	// stored coordinates and geocoding them failed.
	ErrGeolocationUnavailable = errors.New("could not determine accommodation coordinates")
)
