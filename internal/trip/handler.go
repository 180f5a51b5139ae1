package trip

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"truck-dispatch/internal/pkg/apperrors"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// -------------------------------------------------------------------------------------------------
func (h *Handler) ScheduleTowards(c *gin.Context) {
	truckID := c.Query("truckId")
	driverID := c.Query("driverId")
	if truckID == "" || driverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": "truckId and driverId are required"}})
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	t, err := h.service.Schedule(c.Request.Context(), truckID, driverID, req.Location)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusCreated, TripResponse{Trip: t})
}

// -------------------------------------------------------------------------------------------------
func (h *Handler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"code": "VALIDATION", "message": err.Error()}})
		return
	}

	t, err := h.service.UpdateLocation(c.Request.Context(), c.Param("tripId"), req.Location)
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, TripResponse{Trip: t})
}

// -------------------------------------------------------------------------------------------------
func (h *Handler) CompleteTrip(c *gin.Context) {
	confirmation, err := h.service.Complete(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// -------------------------------------------------------------------------------------------------
func (h *Handler) GetTrip(c *gin.Context) {
	t, err := h.service.Get(c.Request.Context(), c.Param("tripId"))
	if err != nil {
		apperrors.ToHTTPError(c, err)
		return
	}
	c.JSON(http.StatusOK, TripResponse{Trip: t})
}
