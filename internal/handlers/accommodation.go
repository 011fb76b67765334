package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kyteam/stayrank/internal/services"
	"github.com/kyteam/stayrank/pkg/models"
)

type AccommodationHandler struct {
	catalog services.CatalogStore
	logger  *logrus.Logger
}

func NewAccommodationHandler(catalog services.CatalogStore, logger *logrus.Logger) *AccommodationHandler {
	return &AccommodationHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// List returns the accommodation catalog, optionally filtered by a
// case-insensitive name substring.
func (h *AccommodationHandler) List(c *gin.Context) {
	var (
		accommodations []models.Accommodation
		err            error
	)

	if name := strings.TrimSpace(c.Query("name")); name != "" {
		accommodations, err = h.catalog.SearchByName(c.Request.Context(), name)
	} else {
		accommodations, err = h.catalog.ListAccommodations(c.Request.Context())
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list accommodations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "CATALOG_UNAVAILABLE",
				"message": "Failed to list accommodations",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accommodations": accommodations,
		"count":          len(accommodations),
	})
}
