package repository_test

import (
	"context"
	"testing"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore/sqlstoretest"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip_LisbonScenario(t *testing.T) {
	for _, mode := range []string{config.ConnModePerCall, config.ConnModePooled} {
		t.Run(mode, func(t *testing.T) {
			provider := sqlstoretest.Open(t, mode)
			trips := repository.NewTripRepository(provider)
			feedback := repository.NewFeedbackRepository(provider)
			ctx := context.Background()

			trip := lisbonTrip()
			id, err := trips.Insert(ctx, trip)
			require.NoError(t, err)
			assert.Equal(t, int64(1), id)

			all, err := trips.FetchAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, *trip, all[0])

			rows, err := feedback.FetchByTrip(ctx, id)
			require.NoError(t, err)
			assert.Empty(t, rows)

			require.NoError(t, feedback.Insert(ctx, id, 4, "great trip"))

			rows, err = feedback.FetchByTrip(ctx, id)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, 4, rows[0].Rating)
			assert.Equal(t, "great trip", rows[0].Comments)
			assert.Equal(t, id, rows[0].TripID)
		})
	}
}

func TestRoundTrip_ManyFeedbackPerTrip(t *testing.T) {
	provider := sqlstoretest.Open(t, config.ConnModePerCall)
	trips := repository.NewTripRepository(provider)
	feedback := repository.NewFeedbackRepository(provider)
	ctx := context.Background()

	id, err := trips.Insert(ctx, lisbonTrip())
	require.NoError(t, err)

	require.NoError(t, feedback.Insert(ctx, id, 5, "loved it"))
	require.NoError(t, feedback.Insert(ctx, id, 2, "changed my mind"))

	rows, err := feedback.FetchByTrip(ctx, id)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first, err := feedback.FirstForTrip(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "loved it", first.Comments)
}

func TestRoundTrip_OrphanFeedbackIsAccepted(t *testing.T) {
	provider := sqlstoretest.Open(t, config.ConnModePerCall)
	feedback := repository.NewFeedbackRepository(provider)
	ctx := context.Background()

	require.NoError(t, feedback.Insert(ctx, 42, 3, "no such trip"))

	rows, err := feedback.FetchByTrip(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRoundTrip_ReturnBeforeDepartureIsStored(t *testing.T) {
	provider := sqlstoretest.Open(t, config.ConnModePerCall)
	trips := repository.NewTripRepository(provider)
	ctx := context.Background()

	trip := lisbonTrip()
	trip.DepartureDate, trip.ReturnDate = trip.ReturnDate, trip.DepartureDate

	id, err := trips.Insert(ctx, trip)
	require.NoError(t, err)

	got, err := trips.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2025-05-10", got.DepartureDate.String())
	assert.Equal(t, "2025-05-01", got.ReturnDate.String())
}

func TestRoundTrip_MissingDSNFailsFirstOperation(t *testing.T) {
	provider := sqlstore.NewProvider(&config.DatabaseConfig{Driver: "postgres"})
	trips := repository.NewTripRepository(provider)

	_, err := trips.Insert(context.Background(), &domain.Trip{Destination: "Nowhere"})
	assert.ErrorIs(t, err, sqlstore.ErrMissingDSN)

	_, err = trips.FetchAll(context.Background())
	assert.ErrorIs(t, err, sqlstore.ErrMissingDSN)
}
