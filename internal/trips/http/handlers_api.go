package http

import (
	"net/http"
	"strconv"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/gin-gonic/gin"
)

// CreatePlan generates and stores a plan outside of any page session.
func (h *Handler) CreatePlan(c *gin.Context) {
	var req domain.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}
	req.ApplyFormDefaults()

	trip, err := h.planner.GeneratePlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "trip": trip})
}

// ListTrips returns every trip with all of its feedback.
func (h *Handler) ListTrips(c *gin.Context) {
	saved, err := h.planner.SavedTrips(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "trips": saved})
}

func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}

	trip, err := h.planner.Trip(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "trip": trip})
}

// ListFeedback returns every feedback row for a trip, or with ?first=true
// only the earliest one (null when there is none).
func (h *Handler) ListFeedback(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}

	var q feedbackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid query"})
		return
	}

	if q.First {
		first, err := h.planner.FirstFeedback(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "feedback": first})
		return
	}

	rows, err := h.planner.Feedback(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "feedback": rows})
}

// CreateFeedback adds feedback to any trip. Unlike the page flow, a trip may
// collect any number of entries here.
func (h *Handler) CreateFeedback(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}

	var body feedbackForm
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if err := h.planner.AddFeedback(c.Request.Context(), id, body.rating(), body.Comments); err != nil {
		c.JSON(statusFor(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "trip_id": id})
}

func tripIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid trip id"})
		return 0, false
	}
	return id, true
}
