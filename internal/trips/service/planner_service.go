package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/llm"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
)

// ErrGeneration marks failures of the text-completion call.
var ErrGeneration = errors.New("plan generation failed")

// TripStore is the persistence the planner needs for trips.
type TripStore interface {
	Insert(ctx context.Context, trip *domain.Trip) (int64, error)
	FetchAll(ctx context.Context) ([]domain.Trip, error)
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
}

// FeedbackStore is the persistence the planner needs for feedback.
type FeedbackStore interface {
	Insert(ctx context.Context, tripID int64, rating int, comments string) error
	FetchByTrip(ctx context.Context, tripID int64) ([]domain.Feedback, error)
	FirstForTrip(ctx context.Context, tripID int64) (*domain.Feedback, error)
}

// PlannerService runs the planning flow: prompt, generate, store, feedback.
type PlannerService struct {
	trips     TripStore
	feedback  FeedbackStore
	generator llm.Generator
}

// NewPlannerService creates a new PlannerService
func NewPlannerService(trips TripStore, feedback FeedbackStore, generator llm.Generator) *PlannerService {
	return &PlannerService{
		trips:     trips,
		feedback:  feedback,
		generator: generator,
	}
}

// GeneratePlan builds the prompt from req, asks the generator for a plan and
// stores the trip with the plan text exactly as returned. Blank dates and
// accommodation take the form defaults.
func (s *PlannerService) GeneratePlan(ctx context.Context, req domain.TripRequest) (*domain.Trip, error) {
	logger := NewLogger(ctx)
	req.ApplyFormDefaults()

	prompt := BuildPrompt(req)
	plan, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		logger.LogError("generate_plan", err)
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	trip := &domain.Trip{
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Activities:    req.Activities,
		Accommodation: req.Accommodation,
		PlanDetails:   plan,
	}
	if _, err := s.trips.Insert(ctx, trip); err != nil {
		logger.LogError("insert_trip", err)
		return nil, err
	}

	logger.LogInfof("generate_plan", "trip_id=%d destination=%q plan_chars=%d", trip.ID, trip.Destination, len(plan))
	return trip, nil
}

// RequestPlan is GeneratePlan driven from a flow session. On success the
// session shows the new trip; on failure it is left untouched.
func (s *PlannerService) RequestPlan(ctx context.Context, sess *session.Session, req domain.TripRequest) (*domain.Trip, error) {
	next := *sess
	if err := next.Transition(session.StatePlanRequested); err != nil {
		return nil, err
	}

	trip, err := s.GeneratePlan(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := next.Transition(session.StatePlanDisplayed); err != nil {
		return nil, err
	}
	next.TripID = trip.ID
	*sess = next

	return trip, nil
}

// AddFeedback records feedback for any trip id. Rating and comments are
// stored as given.
func (s *PlannerService) AddFeedback(ctx context.Context, tripID int64, rating int, comments string) error {
	if err := s.feedback.Insert(ctx, tripID, rating, comments); err != nil {
		NewLogger(ctx).LogError("insert_feedback", err)
		return err
	}
	NewLogger(ctx).LogInfof("add_feedback", "trip_id=%d rating=%d", tripID, rating)
	return nil
}

// SaveFeedback records feedback for the plan the session is displaying.
// Each displayed plan accepts one submission.
func (s *PlannerService) SaveFeedback(ctx context.Context, sess *session.Session, rating int, comments string) (int64, error) {
	if sess.State != session.StatePlanDisplayed || sess.TripID == 0 {
		return 0, domain.ErrFeedbackNotExpected
	}

	next := *sess
	if err := next.Transition(session.StateFeedbackRequested); err != nil {
		return 0, err
	}

	if err := s.AddFeedback(ctx, next.TripID, rating, comments); err != nil {
		return 0, err
	}

	if err := next.Transition(session.StateFeedbackSaved); err != nil {
		return 0, err
	}
	*sess = next

	return next.TripID, nil
}

// Trip returns a single stored trip.
func (s *PlannerService) Trip(ctx context.Context, id int64) (*domain.Trip, error) {
	return s.trips.GetByID(ctx, id)
}

// Feedback returns every feedback row for a trip.
func (s *PlannerService) Feedback(ctx context.Context, tripID int64) ([]domain.Feedback, error) {
	return s.feedback.FetchByTrip(ctx, tripID)
}

// FirstFeedback returns the earliest feedback row for a trip, or nil.
func (s *PlannerService) FirstFeedback(ctx context.Context, tripID int64) (*domain.Feedback, error) {
	return s.feedback.FirstForTrip(ctx, tripID)
}

// SavedTrips lists every trip with its feedback, one feedback query per trip.
func (s *PlannerService) SavedTrips(ctx context.Context) ([]domain.SavedTrip, error) {
	trips, err := s.trips.FetchAll(ctx)
	if err != nil {
		NewLogger(ctx).LogError("fetch_trips", err)
		return nil, err
	}

	out := make([]domain.SavedTrip, 0, len(trips))
	for _, trip := range trips {
		rows, err := s.feedback.FetchByTrip(ctx, trip.ID)
		if err != nil {
			NewLogger(ctx).LogError("fetch_feedback", err)
			return nil, err
		}

		saved := domain.SavedTrip{Trip: trip, Feedback: rows}
		if len(rows) > 0 {
			first := rows[0]
			saved.First = &first
		}
		out = append(out, saved)
	}

	return out, nil
}
