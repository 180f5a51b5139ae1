package apperrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "truck-dispatch/internal/errors"
)

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var codeToStatus = map[string]int{
	domainerrors.ErrDriverNotFound:     http.StatusNotFound,
	domainerrors.ErrTruckNotFound:      http.StatusNotFound,
	domainerrors.ErrTripNotFound:       http.StatusNotFound,
	domainerrors.ErrAssignmentNotFound: http.StatusNotFound,
	domainerrors.ErrTripCompleted:      http.StatusConflict,
	domainerrors.ErrRouteFetch:         http.StatusBadGateway,
	domainerrors.ErrOSMFetch:           http.StatusBadGateway,
	domainerrors.ErrFlightInfoFetch:    http.StatusBadGateway,
	domainerrors.ErrManifestFetch:      http.StatusBadGateway,
	domainerrors.ErrNoParkingSlots:     http.StatusConflict,
	domainerrors.ErrSlotReservation:    http.StatusConflict,
	domainerrors.ErrSlotUnavailable:    http.StatusConflict,
	domainerrors.ErrDBSave:             http.StatusInternalServerError,
	domainerrors.ErrValidation:         http.StatusBadRequest,
	domainerrors.ErrUnauthorized:       http.StatusUnauthorized,
	domainerrors.ErrForbidden:          http.StatusForbidden,
	domainerrors.ErrInternal:           http.StatusInternalServerError,
}

func ToHTTPError(c *gin.Context, err error) {
	var domainErr *domainerrors.DomainError
	if errors.As(err, &domainErr) {
		status, ok := codeToStatus[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, ErrorResponse{
			Error: ErrorBody{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: ErrorBody{
			Code:    domainerrors.ErrInternal,
			Message: "an unexpected error occurred",
		},
	})
}
