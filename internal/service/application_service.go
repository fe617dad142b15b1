package service

import (
	"context"
	"encoding/json"
	"net/mail"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"medprep/internal/backend"
	"medprep/internal/logging"
	"medprep/internal/model"
	"medprep/internal/repository"
)

// MaxUploadSize is the largest accepted attachment
const MaxUploadSize = 5 << 20

var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ApplicationService validates tutor job applications and forwards them
type ApplicationService struct {
	backend     JoinerBackend
	submissions repository.SubmissionRepo
	log         zerolog.Logger
}

// NewApplicationService creates a new application service
func NewApplicationService(b JoinerBackend, submissions repository.SubmissionRepo) *ApplicationService {
	return &ApplicationService{
		backend:     b,
		submissions: submissions,
		log:         logging.Component("applications"),
	}
}

// Validate checks required fields and attachments. The returned error is a
// validation *backend.AppError naming every bad field.
func (s *ApplicationService) Validate(app model.JobApplication) error {
	fields := map[string]string{}
	required := []struct{ name, value string }{
		{"firstName", app.FirstName},
		{"lastName", app.LastName},
		{"email", app.Email},
		{"phone", app.Phone},
		{"position", app.Position},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "required"
		}
	}
	if _, ok := fields["email"]; !ok {
		if len(app.Email) > 254 {
			fields["email"] = "too long"
		} else if _, err := mail.ParseAddress(strings.TrimSpace(app.Email)); err != nil {
			fields["email"] = "invalid email address"
		}
	}

	if app.CV == nil {
		fields["cv"] = "required"
	} else if msg := checkUpload(app.CV); msg != "" {
		fields["cv"] = msg
	}
	if app.PersonalStatement != nil {
		if msg := checkUpload(app.PersonalStatement); msg != "" {
			fields["personalStatement"] = msg
		}
	}

	if len(fields) > 0 {
		return backend.ValidationError("please correct the highlighted fields", fields)
	}
	return nil
}

func checkUpload(u *model.Upload) string {
	if u.Size > MaxUploadSize {
		return "file must be 5MB or smaller"
	}
	if u.Size == 0 {
		return "file is empty"
	}
	if !allowedUploadExtensions[strings.ToLower(filepath.Ext(u.Filename))] {
		return "file must be a PDF or Word document"
	}
	return ""
}

// Submit validates and forwards an application. Backend failures are
// recorded for follow-up and returned.
func (s *ApplicationService) Submit(ctx context.Context, app model.JobApplication) error {
	if err := s.Validate(app); err != nil {
		return err
	}
	app.Email = strings.TrimSpace(app.Email)

	if err := s.backend.SubmitNewJoiner(ctx, app); err != nil {
		s.recordFailure(ctx, app, err)
		return err
	}
	s.log.Info().Str("position", app.Position).Msg("application forwarded")
	return nil
}

func (s *ApplicationService) recordFailure(ctx context.Context, app model.JobApplication, cause error) {
	payload, _ := json.Marshal(map[string]string{
		"firstName":      app.FirstName,
		"lastName":       app.LastName,
		"email":          app.Email,
		"phone":          app.Phone,
		"position":       app.Position,
		"university":     app.University,
		"graduationYear": app.GraduationYear,
		"cv":             uploadName(app.CV),
	})
	sub := &model.FailedSubmission{
		Kind:      model.SubmissionNewJoiner,
		Reference: app.Email,
		Payload:   string(payload),
		Error:     cause.Error(),
	}
	if appErr, ok := backend.AsAppError(cause); ok {
		sub.ErrorKind = string(appErr.Kind)
	}
	if err := s.submissions.Record(ctx, sub); err != nil {
		s.log.Error().Err(err).Str("email", app.Email).Msg("failed to record failed application")
	}
}

func uploadName(u *model.Upload) string {
	if u == nil {
		return ""
	}
	return u.Filename
}
