package domain

// Trip is one travel-planning request together with the plan generated for it.
type Trip struct {
	ID            int64  `json:"id" db:"id"`
	Destination   string `json:"destination" db:"destination"`
	DepartureDate Date   `json:"departure_date" db:"departure_date"`
	ReturnDate    Date   `json:"return_date" db:"return_date"`
	Activities    string `json:"activities" db:"activities"`
	Accommodation string `json:"accommodation" db:"accommodation"`
	PlanDetails   string `json:"plan_details" db:"plan_details"`
}

// Feedback is a rating and comment left for a trip. A trip may have many.
type Feedback struct {
	ID       int64  `json:"id" db:"id"`
	TripID   int64  `json:"trip_id" db:"trip_id"`
	Rating   int    `json:"rating" db:"rating"`
	Comments string `json:"comments" db:"comments"`
}

// Accommodation preferences offered by the form.
const (
	AccommodationHotel     = "Hotel"
	AccommodationHostel    = "Hostel"
	AccommodationApartment = "Apartment"
	AccommodationOther     = "Other"
)

// AccommodationOptions lists the preferences in display order.
var AccommodationOptions = []string{
	AccommodationHotel,
	AccommodationHostel,
	AccommodationApartment,
	AccommodationOther,
}

// Rating bounds used by the feedback form. They are not enforced on write.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

// TripRequest carries the raw form inputs for a plan.
type TripRequest struct {
	Destination   string `json:"destination" form:"destination"`
	DepartureDate Date   `json:"departure_date" form:"departure_date"`
	ReturnDate    Date   `json:"return_date" form:"return_date"`
	Activities    string `json:"activities" form:"activities"`
	Accommodation string `json:"accommodation" form:"accommodation"`
}

// ApplyFormDefaults fills what an untouched form would submit: today for
// either date and the first accommodation option.
func (r *TripRequest) ApplyFormDefaults() {
	if r.DepartureDate.IsZero() {
		r.DepartureDate = Today()
	}
	if r.ReturnDate.IsZero() {
		r.ReturnDate = Today()
	}
	if r.Accommodation == "" {
		r.Accommodation = AccommodationOptions[0]
	}
}

// SavedTrip is a trip with its feedback rows. First is the earliest row, or
// nil when the trip has none.
type SavedTrip struct {
	Trip     Trip       `json:"trip"`
	Feedback []Feedback `json:"feedback"`
	First    *Feedback  `json:"first_feedback,omitempty"`
}
