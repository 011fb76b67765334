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

type RecommendationHandler struct {
	recommender services.Recommender
	logger      *logrus.Logger
}

func NewRecommendationHandler(recommender services.Recommender, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommender: recommender,
		logger:      logger,
	}
}

func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req models.RecommendationRequest
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

	response, err := h.recommender.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *RecommendationHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoCandidatesInRange):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "NO_CANDIDATES_IN_RANGE",
				"message": "No accommodations within the search radius",
			},
		})
	case errors.Is(err, services.ErrNoCandidatesAtAll):
		c.JSON(http.StatusNotFound, gin.H{
			"error": gin.H{
				"code":    "NO_CANDIDATES",
				"message": "No rankable accommodations available",
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
		h.logger.WithError(err).Error("Failed to generate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    "RECOMMENDATION_FAILED",
				"message": "Failed to generate recommendations",
			},
		})
	}
}
