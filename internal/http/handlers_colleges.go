package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/net4grad/alumni-web/internal/ports"
)

// maxCollegeBodyBytes caps the registration payload relayed upstream.
const maxCollegeBodyBytes = 1 << 20

// CollegeHandlers proxies college registrations to the upstream API.
type CollegeHandlers struct {
	Registrar ports.CollegeRegistrar
	Logger    *slog.Logger
}

func (h *CollegeHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Register forwards the JSON body to the upstream and relays its status and
// body verbatim. Invalid JSON is rejected with 400 and an unreachable
// upstream answers 500.
// POST /api/colleges.
func (h *CollegeHandlers) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCollegeBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, ErrorParams{Code: http.StatusRequestEntityTooLarge, ErrCode: "body_too_large", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: errors.New("unable to read request body")})
		return
	}
	if !json.Valid(body) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_json", Err: errors.New("request body must be valid JSON")})
		return
	}

	resp, err := h.Registrar.RegisterCollege(r.Context(), body)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "college registration relay failed", "error", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal server error"})
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		h.logger().WarnContext(r.Context(), "failed to write relayed response", "error", err)
	}
}
