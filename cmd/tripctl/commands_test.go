package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/llm"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore/sqlstoretest"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/repository"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usePlanner(t *testing.T, gen llm.Generator) {
	t.Helper()

	p := sqlstoretest.Open(t, config.ConnModePerCall)
	planner := service.NewPlannerService(repository.NewTripRepository(p), repository.NewFeedbackRepository(p), gen)

	orig := newPlanner
	newPlanner = func() (*service.PlannerService, func(), error) {
		return planner, func() {}, nil
	}
	noColor = true
	t.Cleanup(func() {
		newPlanner = orig
		noColor = false
	})
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores flag defaults; cobra keeps parsed values between runs.
func resetFlags(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
}

func TestPlanFeedbackTrips(t *testing.T) {
	usePlanner(t, llm.Echo)

	out, err := execute(t, "plan", "--destination", "Lisbon", "--departure", "2025-05-01", "--return", "2025-05-10", "--activities", "museums")
	require.NoError(t, err)
	assert.Contains(t, out, "Destination: Lisbon, Departure Date: 2025-05-01, Return Date: 2025-05-10, Activities: museums, Accommodation: Hotel")

	_, err = execute(t, "feedback", "1", "--rating", "4", "--comments", "great trip")
	require.NoError(t, err)
	_, err = execute(t, "feedback", "1", "--rating", "2", "--comments", "second thoughts")
	require.NoError(t, err)

	out, err = execute(t, "trips")
	require.NoError(t, err)
	assert.Contains(t, out, "Trip to Lisbon")
	assert.Contains(t, out, "Dates: 2025-05-01 to 2025-05-10")
	assert.Contains(t, out, "Rating: 4, Comments: great trip")
	assert.NotContains(t, out, "second thoughts")

	out, err = execute(t, "trips", "--all-feedback")
	require.NoError(t, err)
	assert.Contains(t, out, "Rating: 2, Comments: second thoughts")
}

func TestTrips_Empty(t *testing.T) {
	usePlanner(t, llm.Echo)

	out, err := execute(t, "trips")
	require.NoError(t, err)
	assert.Equal(t, "No saved trips found.", strings.TrimSpace(out))
}

func TestTrips_NoFeedback(t *testing.T) {
	usePlanner(t, llm.Echo)

	_, err := execute(t, "plan", "--destination", "Oslo")
	require.NoError(t, err)

	out, err := execute(t, "trips")
	require.NoError(t, err)
	assert.Contains(t, out, "No feedback yet.")
}

func TestPlan_GeneratorError(t *testing.T) {
	usePlanner(t, llm.GeneratorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}))

	_, err := execute(t, "plan", "--destination", "Lisbon")
	assert.ErrorIs(t, err, service.ErrGeneration)
}

func TestArgumentErrors(t *testing.T) {
	usePlanner(t, llm.Echo)

	_, err := execute(t, "plan", "--departure", "05/01/2025")
	assert.Error(t, err)

	_, err = execute(t, "feedback", "abc")
	assert.ErrorContains(t, err, "invalid trip id")

	_, err = execute(t, "feedback")
	assert.Error(t, err)
}
