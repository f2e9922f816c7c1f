// Package domain holds the core ticket entities shared by the ingestion
// pipeline, the stream consumer, and the read path.
package domain

import (
	"fmt"
	"unicode/utf8"
)

// Ticket is the canonical citizen report record. It is only constructed after
// a submission has passed validation and boundary classification; Area is
// always set and ID/Timestamp are assigned once at publish time.
type Ticket struct {
	ID       string  `json:"id"`
	Concern  string  `json:"concern"`
	Notes    string  `json:"notes,omitempty"`
	UserName string  `json:"userName"`
	Contact  string  `json:"contact,omitempty"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Area     string  `json:"area"`
	// Timestamp is epoch milliseconds at publish time. Non-decreasing in
	// publish order; persistence order may differ under redelivery.
	Timestamp int64 `json:"timestamp"`
}

// Submission is a raw citizen report before geocoding and boundary
// classification. It carries no identifier; one is assigned at publish time.
type Submission struct {
	Concern  string  `json:"concern"`
	Notes    string  `json:"notes"`
	UserName string  `json:"userName"`
	Contact  string  `json:"contact"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// ValidationError reports the first invalid field of a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks structural and range constraints on the submission.
// It stops at the first failing field and returns a *ValidationError for it;
// subsequent fields are not inspected.
func (s *Submission) Validate() error {
	if s.Concern == "" {
		return &ValidationError{Field: "concern", Message: "is required"}
	}
	// Bounds count characters, not bytes, so multibyte scripts get the
	// full allowance.
	if utf8.RuneCountInString(s.Concern) > 100 {
		return &ValidationError{Field: "concern", Message: "must be at most 100 characters"}
	}
	if utf8.RuneCountInString(s.Notes) > 2000 {
		return &ValidationError{Field: "notes", Message: "must be at most 2000 characters"}
	}
	if s.UserName == "" {
		return &ValidationError{Field: "userName", Message: "is required"}
	}
	if utf8.RuneCountInString(s.UserName) > 200 {
		return &ValidationError{Field: "userName", Message: "must be at most 200 characters"}
	}
	if utf8.RuneCountInString(s.Contact) > 100 {
		return &ValidationError{Field: "contact", Message: "must be at most 100 characters"}
	}
	if s.Lat < -90 || s.Lat > 90 {
		return &ValidationError{Field: "lat", Message: "must be between -90 and 90"}
	}
	if s.Lng < -180 || s.Lng > 180 {
		return &ValidationError{Field: "lng", Message: "must be between -180 and 180"}
	}
	return nil
}
