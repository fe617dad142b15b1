package model

import (
	"io"
	"time"
)

// JobApplication is a tutor job application submitted from the careers page
type JobApplication struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Position          string
	University        string
	GraduationYear    string
	Message           string
	CV                *Upload
	PersonalStatement *Upload
}

// Upload is a file attached to a form submission
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SubmissionKind names the outbound call a FailedSubmission belongs to
type SubmissionKind string

const (
	SubmissionBooking   SubmissionKind = "booking"
	SubmissionNewJoiner SubmissionKind = "new_joiner"
)

// FailedSubmission records an outbound call to the backend that did not succeed
type FailedSubmission struct {
	ID        string         `json:"id" bson:"_id,omitempty"`
	Kind      SubmissionKind `json:"kind" bson:"kind"`
	Reference string         `json:"reference" bson:"reference"` // draft id or applicant email
	Payload   string         `json:"payload" bson:"payload"`
	ErrorKind string         `json:"errorKind" bson:"errorKind"`
	Error     string         `json:"error" bson:"error"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}
