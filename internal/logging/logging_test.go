package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if err := SetupWriter(&bytes.Buffer{}, "loud", false); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestRequestsLogsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	if err := SetupWriter(&buf, "info", false); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	h := middleware.RequestID(Requests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	if line["status"] != float64(http.StatusTeapot) || line["path"] != "/v1/events" || line["level"] != "warn" || line["component"] != "http" {
		t.Errorf("log line = %v", line)
	}
	if id, _ := line["request_id"].(string); id == "" {
		t.Errorf("missing request id in %v", line)
	}
	if line["bytes"] != float64(len("short and stout")) {
		t.Errorf("bytes = %v", line["bytes"])
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := SetupWriter(&buf, "info", false); err != nil {
		t.Fatal(err)
	}
	logger := Component("test")
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte(`"component":"test"`)) {
		t.Errorf("output = %s", buf.String())
	}
}
