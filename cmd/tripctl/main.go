package main

import (
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/travel-planner-backend/config"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/llm"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/storage/sqlstore"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/repository"
	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/service"
	"github.com/spf13/cobra"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:           "tripctl",
	Short:         "Plan trips and record feedback from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(planCmd, feedbackCmd, tripsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// newPlanner wires the planner against the configured store and generator.
// The returned func releases both.
var newPlanner = func() (*service.PlannerService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	db := sqlstore.NewProvider(&cfg.Database)
	generator, err := llm.New(&cfg.Generator)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("generator: %w", err)
	}

	planner := service.NewPlannerService(
		repository.NewTripRepository(db),
		repository.NewFeedbackRepository(db),
		generator,
	)
	cleanup := func() {
		_ = llm.Close(generator)
		_ = db.Close()
	}
	return planner, cleanup, nil
}
