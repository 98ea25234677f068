package domain

import "errors"

var (
	ErrTripNotFound        = errors.New("trip not found")
	ErrFeedbackNotExpected = errors.New("no displayed plan is awaiting feedback")
)
