package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKm(t *testing.T) {
	daejeonCityHall := Coordinate{Lat: 36.3504, Lon: 127.3845}
	daejeonStation := Coordinate{Lat: 36.3326, Lon: 127.4342}

	t.Run("identical coordinates have zero distance", func(t *testing.T) {
		d, err := DistanceKm(daejeonCityHall, daejeonCityHall)
		require.NoError(t, err)
		assert.Equal(t, 0.0, d)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		d1, err := DistanceKm(daejeonCityHall, daejeonStation)
		require.NoError(t, err)
		d2, err := DistanceKm(daejeonStation, daejeonCityHall)
		require.NoError(t, err)
		assert.InDelta(t, d1, d2, 1e-12)
	})

	t.Run("known distance within city", func(t *testing.T) {
		d, err := DistanceKm(daejeonCityHall, daejeonStation)
		require.NoError(t, err)
		// City hall to central station is roughly 4.9 km as the crow flies.
		assert.InDelta(t, 4.9, d, 0.3)
	})

	t.Run("antipodal-ish sanity", func(t *testing.T) {
		d, err := DistanceKm(Coordinate{Lat: 0, Lon: 0}, Coordinate{Lat: 0, Lon: 180})
		require.NoError(t, err)
		// Half the Earth's circumference at radius 6371 km.
		assert.InDelta(t, 20015.0, d, 5.0)
	})
}

func TestDistanceKm_InvalidCoordinates(t *testing.T) {
	valid := Coordinate{Lat: 36.35, Lon: 127.38}

	cases := []struct {
		name string
		bad  Coordinate
	}{
		{"latitude too high", Coordinate{Lat: 91, Lon: 0}},
		{"latitude too low", Coordinate{Lat: -90.0001, Lon: 0}},
		{"longitude too high", Coordinate{Lat: 0, Lon: 180.5}},
		{"longitude too low", Coordinate{Lat: 0, Lon: -181}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DistanceKm(valid, tc.bad)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)

			_, err = DistanceKm(tc.bad, valid)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
		})
	}
}
