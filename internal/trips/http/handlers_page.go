package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/service"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

// Index renders the form, the plan on display (if any) and, when toggled on,
// the saved trips.
func (h *Handler) Index(c *gin.Context) {
	data := newPageData()

	sess, err := h.loadSession(c)
	if err != nil {
		h.renderError(c, data, err)
		return
	}
	if err := h.fillDisplayedTrip(c, data, sess); err != nil {
		h.renderError(c, data, err)
		return
	}

	h.renderPage(c, http.StatusOK, data)
}

// SubmitPlan handles "Give me a plan!".
func (h *Handler) SubmitPlan(c *gin.Context) {
	data := newPageData()

	var req domain.TripRequest
	if err := c.ShouldBind(&req); err != nil {
		data.Error = "invalid form: " + err.Error()
		h.renderPage(c, http.StatusBadRequest, data)
		return
	}
	req.ApplyFormDefaults()
	data.Form = req

	sess, err := h.loadSession(c)
	if err != nil {
		h.renderError(c, data, err)
		return
	}

	trip, err := h.planner.RequestPlan(c.Request.Context(), sess, req)
	if err != nil {
		h.renderError(c, data, err)
		return
	}
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		h.renderError(c, data, err)
		return
	}

	data.Trip = trip
	data.ShowFeedbackForm = true
	data.Success = "Trip saved successfully!"
	h.renderPage(c, http.StatusOK, data)
}

// SubmitFeedback handles "Save Feedback" for the plan on display.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	data := newPageData()

	var form feedbackForm
	if err := c.ShouldBind(&form); err != nil {
		data.Error = "invalid form: " + err.Error()
		h.renderPage(c, http.StatusBadRequest, data)
		return
	}

	sess, err := h.loadSession(c)
	if err != nil {
		h.renderError(c, data, err)
		return
	}

	if _, err := h.planner.SaveFeedback(c.Request.Context(), sess, form.rating(), form.Comments); err != nil {
		h.renderError(c, data, err)
		return
	}
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		h.renderError(c, data, err)
		return
	}

	if err := h.fillDisplayedTrip(c, data, sess); err != nil {
		h.renderError(c, data, err)
		return
	}
	data.Success = "Feedback saved successfully!"
	h.renderPage(c, http.StatusOK, data)
}

// fillDisplayedTrip loads the session's trip and, if requested, the saved trips.
func (h *Handler) fillDisplayedTrip(c *gin.Context, data *pageData, sess *session.Session) error {
	ctx := c.Request.Context()

	if sess.TripID != 0 && (sess.State == session.StatePlanDisplayed || sess.State == session.StateFeedbackSaved) {
		trip, err := h.planner.Trip(ctx, sess.TripID)
		switch {
		case errors.Is(err, domain.ErrTripNotFound):
			service.NewLogger(ctx).LogWarnf("load_displayed_trip", "session_id=%s trip_id=%d not found", sess.ID, sess.TripID)
		case err != nil:
			return err
		default:
			data.Trip = trip
			data.ShowFeedbackForm = sess.State == session.StatePlanDisplayed
		}
	}

	return h.fillSavedTrips(c, data)
}

func (h *Handler) fillSavedTrips(c *gin.Context, data *pageData) error {
	var q showTripsQuery
	_ = c.ShouldBindQuery(&q)
	data.ShowTrips = q.enabled()
	if !data.ShowTrips {
		return nil
	}

	saved, err := h.planner.SavedTrips(c.Request.Context())
	if err != nil {
		return err
	}
	data.SavedTrips = saved
	return nil
}

func (h *Handler) renderError(c *gin.Context, data *pageData, err error) {
	_ = c.Error(err)
	data.Error = err.Error()
	data.ShowFeedbackForm = false
	h.renderPage(c, statusFor(err), data)
}

func (h *Handler) renderPage(c *gin.Context, status int, data *pageData) {
	c.Render(status, render.HTML{Template: pageTemplate, Name: "page", Data: data})
}
