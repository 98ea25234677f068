package http

import (
	"embed"
	"html/template"
	"time"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type Handler struct {
	planner  Planner
	sessions session.Store
}

func New(planner Planner, sessions session.Store) *Handler {
	return &Handler{planner: planner, sessions: sessions}
}

// RegisterPages mounts the form page and its two actions.
func (h *Handler) RegisterPages(rg gin.IRouter, sessionTTL time.Duration) {
	pages := rg.Group("")
	pages.Use(SessionMiddleware(sessionTTL))

	pages.GET("/", h.Index)
	pages.POST("/plan", h.SubmitPlan)
	pages.POST("/feedback", h.SubmitFeedback)
}

// Register mounts the JSON API.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/trips/plan", h.CreatePlan)
	rg.GET("/trips", h.ListTrips)
	rg.GET("/trips/:id", h.GetTrip)
	rg.GET("/trips/:id/feedback", h.ListFeedback)
	rg.POST("/trips/:id/feedback", h.CreateFeedback)
}
