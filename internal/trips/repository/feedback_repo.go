package repository

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/jmoiron/sqlx"
)

// FeedbackRepository handles SQL operations for trip feedback
type FeedbackRepository struct {
	conn Connector
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(conn Connector) *FeedbackRepository {
	return &FeedbackRepository{conn: conn}
}

// Insert records feedback for a trip. The trip is not looked up first; any
// referential check is left to the store.
func (r *FeedbackRepository) Insert(ctx context.Context, tripID int64, rating int, comments string) error {
	query := `INSERT INTO feedback (trip_id, rating, comments) VALUES (?, ?, ?)`

	err := r.conn.Do(ctx, func(db *sqlx.DB) error {
		_, err := db.ExecContext(ctx, db.Rebind(query), tripID, rating, comments)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	return nil
}

// FetchByTrip returns all feedback for a trip, oldest first. A trip without
// feedback yields an empty slice.
func (r *FeedbackRepository) FetchByTrip(ctx context.Context, tripID int64) ([]domain.Feedback, error) {
	query := `
		SELECT id, trip_id, rating, comments
		FROM feedback
		WHERE trip_id = ?
		ORDER BY id
	`

	rows := []domain.Feedback{}
	err := r.conn.Do(ctx, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &rows, db.Rebind(query), tripID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback: %w", err)
	}

	return rows, nil
}

// FirstForTrip returns the earliest feedback for a trip, or nil if there is none.
func (r *FeedbackRepository) FirstForTrip(ctx context.Context, tripID int64) (*domain.Feedback, error) {
	rows, err := r.FetchByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
