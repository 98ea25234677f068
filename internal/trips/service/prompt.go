package service

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/domain"
)

const promptTemplate = `
You are an expert at planning overseas trips.

Please take the users request and plan a comprehensive trip for them.

Please include the following details:
- The destination
- The duration of the trip
- The departure and return dates
- The flight options
- The activities that will be done
- The accommodation options

The user's request is:
{prompt}
`

// FullRequest flattens the raw form inputs into one line.
func FullRequest(req domain.TripRequest) string {
	return fmt.Sprintf(
		"Destination: %s, Departure Date: %s, Return Date: %s, Activities: %s, Accommodation: %s",
		req.Destination,
		req.DepartureDate,
		req.ReturnDate,
		req.Activities,
		req.Accommodation,
	)
}

// BuildPrompt wraps the request in the trip-planner instructions.
func BuildPrompt(req domain.TripRequest) string {
	return strings.Replace(promptTemplate, "{prompt}", FullRequest(req), 1)
}
