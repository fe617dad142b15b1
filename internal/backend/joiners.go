package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"medprep/internal/model"
)

// SubmitNewJoiner forwards a job application with its attachments as
// multipart/form-data. It is never retried.
func (c *Client) SubmitNewJoiner(ctx context.Context, app model.JobApplication) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"first_name", app.FirstName},
		{"last_name", app.LastName},
		{"email", app.Email},
		{"phone", app.Phone},
		{"position", app.Position},
		{"university", app.University},
		{"graduation_year", app.GraduationYear},
		{"message", app.Message},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("encode application: %w", err)
		}
	}
	if err := writeUpload(w, "cv", app.CV); err != nil {
		return err
	}
	if err := writeUpload(w, "personal_statement", app.PersonalStatement); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("encode application: %w", err)
	}

	_, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/new-joiners",
		contentType: w.FormDataContentType(),
		body:        buf.Bytes(),
	})
	return err
}

func writeUpload(w *multipart.Writer, field string, u *model.Upload) error {
	if u == nil || u.Body == nil {
		return nil
	}
	part, err := w.CreateFormFile(field, u.Filename)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	if _, err := io.Copy(part, u.Body); err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}
	return nil
}
