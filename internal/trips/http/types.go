package http

import (
	"context"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
)

// Planner is the subset of the planner service the handlers drive.
type Planner interface {
	GeneratePlan(ctx context.Context, req domain.TripRequest) (*domain.Trip, error)
	RequestPlan(ctx context.Context, sess *session.Session, req domain.TripRequest) (*domain.Trip, error)
	AddFeedback(ctx context.Context, tripID int64, rating int, comments string) error
	SaveFeedback(ctx context.Context, sess *session.Session, rating int, comments string) (int64, error)
	Trip(ctx context.Context, id int64) (*domain.Trip, error)
	Feedback(ctx context.Context, tripID int64) ([]domain.Feedback, error)
	FirstFeedback(ctx context.Context, tripID int64) (*domain.Feedback, error)
	SavedTrips(ctx context.Context) ([]domain.SavedTrip, error)
}

type feedbackForm struct {
	Rating   *int   `form:"rating" json:"rating"`
	Comments string `form:"comments" json:"comments"`
}

func (f feedbackForm) rating() int {
	if f.Rating == nil {
		return domain.DefaultRating
	}
	return *f.Rating
}

type feedbackQuery struct {
	First bool `form:"first"`
}

type showTripsQuery struct {
	ShowTrips string `form:"show_trips"`
}

func (q showTripsQuery) enabled() bool {
	switch q.ShowTrips {
	case "on", "true", "1":
		return true
	}
	return false
}

type pageData struct {
	Form             domain.TripRequest
	Accommodations   []string
	Trip             *domain.Trip
	ShowFeedbackForm bool
	MinRating        int
	MaxRating        int
	DefaultRating    int
	Success          string
	Error            string
	ShowTrips        bool
	SavedTrips       []domain.SavedTrip
}

func newPageData() *pageData {
	form := domain.TripRequest{}
	form.ApplyFormDefaults()
	return &pageData{
		Form:           form,
		Accommodations: domain.AccommodationOptions,
		MinRating:      domain.MinRating,
		MaxRating:      domain.MaxRating,
		DefaultRating:  domain.DefaultRating,
	}
}
