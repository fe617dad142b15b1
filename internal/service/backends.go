package service

import (
	"context"
	"errors"

	"medprep/internal/model"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// The interfaces below are the slices of *backend.Client each service uses.

type QuestionBackend interface {
	ListQuestions(ctx context.Context, status model.QuestionStatus) ([]model.Question, error)
	CreateQuestion(ctx context.Context, in model.QuestionInput) (*model.Question, error)
	UpdateQuestion(ctx context.Context, id string, in model.QuestionInput) (*model.Question, error)
	UpdateQuestionStatus(ctx context.Context, id string, upd model.QuestionStatusUpdate) (*model.Question, error)
	ListSkills(ctx context.Context, activeOnly bool) ([]model.Skill, error)
	CreateSkill(ctx context.Context, s model.Skill) (*model.Skill, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
}

type BookingBackend interface {
	ListUniversities(ctx context.Context) ([]model.University, error)
	ListBookings(ctx context.Context) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b model.Booking) (*model.Booking, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u model.User) (*model.User, error)
}

type JoinerBackend interface {
	SubmitNewJoiner(ctx context.Context, app model.JobApplication) error
}

type StationBackend interface {
	ListStations(ctx context.Context) ([]model.UniversityStations, error)
	GetStation(ctx context.Context, id string) (*model.UniversityStations, error)
	CreateStation(ctx context.Context, s model.UniversityStations) (*model.UniversityStations, error)
	UpdateStation(ctx context.Context, id string, s model.UniversityStations) (*model.UniversityStations, error)
	DeleteStation(ctx context.Context, id string) error
}
