package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"medprep/internal/model"
	"medprep/internal/service"
)

// Two attachments plus the text fields
const maxApplicationBody = 2*service.MaxUploadSize + 1<<20

// ApplicationHandler handles tutor job applications
type ApplicationHandler struct {
	applicationSvc *service.ApplicationService
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationSvc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationSvc: applicationSvc}
}

// Submit handles POST /v1/applications (multipart/form-data)
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxApplicationBody)
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "application is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "expected a multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	app := model.JobApplication{
		FirstName:      r.FormValue("first_name"),
		LastName:       r.FormValue("last_name"),
		Email:          r.FormValue("email"),
		Phone:          r.FormValue("phone"),
		Position:       r.FormValue("position"),
		University:     r.FormValue("university"),
		GraduationYear: r.FormValue("graduation_year"),
		Message:        r.FormValue("message"),
	}

	var closers []multipart.File
	defer func() {
		for _, f := range closers {
			f.Close()
		}
	}()
	for field, dst := range map[string]**model.Upload{
		"cv":                 &app.CV,
		"personal_statement": &app.PersonalStatement,
	} {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read "+field)
			return
		}
		closers = append(closers, file)
		*dst = &model.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	}

	if err := h.applicationSvc.Submit(r.Context(), app); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "received"})
}
