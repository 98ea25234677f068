package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/jmoiron/sqlx"
)

// Connector yields a scoped database handle for the duration of fn.
type Connector interface {
	Do(ctx context.Context, fn func(db *sqlx.DB) error) error
}

// TripRepository handles SQL operations for trips
type TripRepository struct {
	conn Connector
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(conn Connector) *TripRepository {
	return &TripRepository{conn: conn}
}

const tripColumns = `id, destination, departure_date, return_date, activities, accommodation, plan_details`

// Insert stores a trip and returns the identifier assigned by the store.
func (r *TripRepository) Insert(ctx context.Context, trip *domain.Trip) (int64, error) {
	query := `
		INSERT INTO trips (destination, departure_date, return_date, activities, accommodation, plan_details)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := r.conn.Do(ctx, func(db *sqlx.DB) error {
		return db.QueryRowxContext(ctx, db.Rebind(query),
			trip.Destination,
			trip.DepartureDate,
			trip.ReturnDate,
			trip.Activities,
			trip.Accommodation,
			trip.PlanDetails,
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert trip: %w", err)
	}

	trip.ID = id
	return id, nil
}

// FetchAll returns every trip in whatever order the store yields them.
func (r *TripRepository) FetchAll(ctx context.Context) ([]domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips`

	trips := []domain.Trip{}
	err := r.conn.Do(ctx, func(db *sqlx.DB) error {
		return db.SelectContext(ctx, &trips, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}

	return trips, nil
}

// GetByID retrieves a single trip
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = ?`

	var trip domain.Trip
	err := r.conn.Do(ctx, func(db *sqlx.DB) error {
		return db.GetContext(ctx, &trip, db.Rebind(query), id)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return &trip, nil
}
