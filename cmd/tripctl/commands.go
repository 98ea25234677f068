package main

import (
	"fmt"
	"strconv"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
	"github.com/spf13/cobra"
)

// --- plan ---

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and save a travel plan",
	Long: `Generate a travel plan and save it as a trip.

Examples:
  tripctl plan --destination Lisbon --departure 2025-05-01 --return 2025-05-10 --activities museums
  tripctl plan --destination Oslo --accommodation Hostel`,
	RunE: func(cmd *cobra.Command, args []string) error {
		destination, _ := cmd.Flags().GetString("destination")
		departure, _ := cmd.Flags().GetString("departure")
		ret, _ := cmd.Flags().GetString("return")
		activities, _ := cmd.Flags().GetString("activities")
		accommodation, _ := cmd.Flags().GetString("accommodation")

		req := domain.TripRequest{
			Destination:   destination,
			Activities:    activities,
			Accommodation: accommodation,
		}
		var err error
		if departure != "" {
			if req.DepartureDate, err = domain.ParseDate(departure); err != nil {
				return err
			}
		}
		if ret != "" {
			if req.ReturnDate, err = domain.ParseDate(ret); err != nil {
				return err
			}
		}
		req.ApplyFormDefaults()

		planner, cleanup, err := newPlanner()
		if err != nil {
			return err
		}
		defer cleanup()

		trip, err := planner.GeneratePlan(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), trip.PlanDetails)
		printSuccess("Trip saved successfully! (id %d)", trip.ID)
		return nil
	},
}

func init() {
	planCmd.Flags().String("destination", "", "where to travel")
	planCmd.Flags().String("departure", "", "departure date, YYYY-MM-DD (default today)")
	planCmd.Flags().String("return", "", "return date, YYYY-MM-DD (default today)")
	planCmd.Flags().String("activities", "", "activities you're interested in")
	planCmd.Flags().String("accommodation", domain.AccommodationHotel, "Hotel, Hostel, Apartment or Other")
}

// --- feedback ---

var feedbackCmd = &cobra.Command{
	Use:   "feedback <trip-id>",
	Short: "Save feedback for a trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tripID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid trip id %q", args[0])
		}
		rating, _ := cmd.Flags().GetInt("rating")
		comments, _ := cmd.Flags().GetString("comments")

		planner, cleanup, err := newPlanner()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := planner.AddFeedback(cmd.Context(), tripID, rating, comments); err != nil {
			return err
		}

		printSuccess("Feedback saved successfully!")
		return nil
	},
}

func init() {
	feedbackCmd.Flags().Int("rating", domain.DefaultRating, fmt.Sprintf("rating from %d to %d", domain.MinRating, domain.MaxRating))
	feedbackCmd.Flags().String("comments", "", "comments on the plan")
}

// --- trips ---

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "List saved trips with their feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all-feedback")

		planner, cleanup, err := newPlanner()
		if err != nil {
			return err
		}
		defer cleanup()

		saved, err := planner.SavedTrips(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(saved) == 0 {
			fmt.Fprintln(out, "No saved trips found.")
			return nil
		}

		for _, s := range saved {
			fmt.Fprintln(out, colorize(colorBold, "Trip to "+s.Trip.Destination))
			fmt.Fprintf(out, "Dates: %s to %s\n", s.Trip.DepartureDate, s.Trip.ReturnDate)
			fmt.Fprintf(out, "Activities: %s\n", s.Trip.Activities)
			fmt.Fprintf(out, "Accommodation: %s\n", s.Trip.Accommodation)
			fmt.Fprintf(out, "Plan Details: %s\n", s.Trip.PlanDetails)

			rows := s.Feedback
			if !all && s.First != nil {
				rows = rows[:1]
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No feedback yet.")
			}
			for _, f := range rows {
				fmt.Fprintf(out, "%s Rating: %d, Comments: %s\n", colorize(colorCyan, "•"), f.Rating, f.Comments)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	tripsCmd.Flags().Bool("all-feedback", false, "show every feedback entry instead of the first")
}
