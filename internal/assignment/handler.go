package assignment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"truck-dispatch/internal/common"
	"truck-dispatch/internal/pkg/apperrors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// -------------------------------------------------------------------------------------------------
func (h *Handler) TodaysAssignments(c *gin.Context) {
	c.JSON(http.StatusOK, AssignmentsResponse{Assignments: h.service.GetAll()})
}

// -------------------------------------------------------------------------------------------------
func (h *Handler) DriverAssignment(c *gin.Context) {
	truckID := c.Query("truckId")
	if truckID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "truckId is required"}})
		return
	}
	c.JSON(http.StatusOK, AssignmentsResponse{Assignments: h.service.GetByTruck(truckID)})
}

// -------------------------------------------------------------------------------------------------
// FlightInfo serves the computed pickup schedule for an assignment. A prior
// result is served from cache unless refresh=true forces recomputation.
func (h *Handler) FlightInfo(c *gin.Context) {
	assignmentID := c.Query("assignmentId")
	if assignmentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "assignmentId is required"}})
		return
	}

	lat, latErr := strconv.ParseFloat(c.Query("currLat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("currLon"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "currLat and currLon must be valid coordinates"}})
		return
	}
	if err := common.ValidateLatLng(lat, lng); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}
	current := common.NewLocation(lat, lng)

	if c.Query("refresh") != "true" {
		if details, ok := h.service.CachedFlightInfo(c.Request.Context(), assignmentID); ok {
			c.JSON(http.StatusOK, details)
			return
		}
	}

	details, err := h.service.FlightInfo(c.Request.Context(), assignmentID, current)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
