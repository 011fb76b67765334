package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/pkg/models"
)

// GazetteerIndex holds an in-memory snapshot of the place-name table and
// answers substring-containment lookups against it. Ties among rows
// matching one token resolve to the first row in table order. The
// snapshot is replaced wholesale on refresh; lookups never block writes
// longer than a slice swap.
type GazetteerIndex struct {
	source GazetteerSource
	logger *logrus.Logger

	mu      sync.RWMutex
	regions []models.Region

	stop     chan struct{}
	stopOnce sync.Once
}

// NewGazetteerIndex loads the initial snapshot synchronously and, when
// refreshInterval is positive, keeps it fresh in the background until
// Stop is called.
func NewGazetteerIndex(ctx context.Context, source GazetteerSource, refreshInterval time.Duration, logger *logrus.Logger) (*GazetteerIndex, error) {
	g := &GazetteerIndex{
		source: source,
		logger: logger,
		stop:   make(chan struct{}),
	}

	if err := g.refresh(ctx); err != nil {
		return nil, fmt.Errorf("initial gazetteer load failed: %w", err)
	}

	if refreshInterval > 0 {
		go g.refreshLoop(refreshInterval)
	}

	return g, nil
}

// FindDistrict returns the coordinate of the first gazetteer row whose
// district field contains name.
func (g *GazetteerIndex) FindDistrict(name string) (geo.Coordinate, bool) {
	return g.find(name, func(r models.Region) string { return r.District })
}

// FindNeighborhood returns the coordinate of the first gazetteer row
// whose neighborhood field contains name.
func (g *GazetteerIndex) FindNeighborhood(name string) (geo.Coordinate, bool) {
	return g.find(name, func(r models.Region) string { return r.Neighborhood })
}

func (g *GazetteerIndex) find(name string, field func(models.Region) string) (geo.Coordinate, bool) {
	if name == "" {
		return geo.Coordinate{}, false
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, r := range g.regions {
		if strings.Contains(field(r), name) {
			return r.Coordinate(), true
		}
	}
	return geo.Coordinate{}, false
}

func (g *GazetteerIndex) refresh(ctx context.Context) error {
	regions, err := g.source.ListRegions(ctx)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.regions = regions
	g.mu.Unlock()

	g.logger.WithField("regions", len(regions)).Debug("Gazetteer snapshot loaded")
	return nil
}

func (g *GazetteerIndex) refreshLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := g.refresh(ctx); err != nil {
				// Keep serving the previous snapshot on refresh failure.
				g.logger.WithError(err).Warn("Gazetteer refresh failed")
			}
			cancel()
		}
	}
}

// Stop terminates the background refresher. Safe to call more than once.
func (g *GazetteerIndex) Stop() {
	g.stopOnce.Do(func() { close(g.stop) })
}
