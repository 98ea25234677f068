package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/service"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrTripNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFeedbackNotExpected), errors.Is(err, session.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
