package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/geo"
	"github.com/kyteam/stayrank/internal/services"
	"github.com/kyteam/stayrank/pkg/models"
)

type RouteHandler struct {
	estimator services.RouteEstimator
	catalog   services.CatalogStore
	logger    *logrus.Logger
}

func NewRouteHandler(estimator services.RouteEstimator, catalog services.CatalogStore, logger *logrus.Logger) *RouteHandler {
	return &RouteHandler{
		estimator: estimator,
		catalog:   catalog,
		logger:    logger,
	}
}

func (h *RouteHandler) Estimate(c *gin.Context) {
	var req models.RouteEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_REQUEST_BODY",
				"message": "Invalid request body format",
				"details": err.Error(),
			},
		})
		return
	}

	origin := geo.Coordinate{Lat: req.UserLocation[0], Lon: req.UserLocation[1]}
	result, err := h.estimator.Estimate(c.Request.Context(), origin, req.HotelName)
	if err != nil {
		h.writeError(c, err)
		return
	}

	// Persist the freshly geocoded coordinate so the next lookup skips
	// the geocoder. The response does not depend on this succeeding.
	if result.Geocoded {
		if err := h.catalog.UpdateCoordinates(c.Request.Context(), result.AccommodationID, result.Coordinate); err != nil {
			h.logger.WithError(err).WithField("accommodation_id", result.AccommodationID).
				Warn("Failed to persist geocoded coordinates")
		}
	}

	c.JSON(http.StatusOK, result.Response)
}

func (h *RouteHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccommodationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "ACCOMMODATION_NOT_FOUND",
				"message": "No accommodation matches the requested name",
			},
		})
	case errors.Is(err, services.ErrGeolocationUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": gin.H{
				"code":    "GEOLOCATION_UNAVAILABLE",
				"message": "Could not determine the accommodation's coordinates",
			},
		})
	case errors.Is(err, geo.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"code":    "INVALID_COORDINATE",
				"message": "Latitude must be in [-90, 90] and longitude in [-180, 180]",
			},
		})
	default:
		h.logger.WithError(err).Error("Failed to estimate route times")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "ROUTE_ESTIMATE_FAILED",
				"message": "Failed to estimate route times",
			},
		})
	}
}
