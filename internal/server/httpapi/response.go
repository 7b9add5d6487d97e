package httpapi

import (
	"encoding/json"
	"net/http"
	"time"
)

// Every response carries the envelope field "error"; error payloads add a
// human-readable message.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type messageResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type tokenResponse struct {
	Error     bool   `json:"error"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

type photoItem struct {
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	UploadTime   time.Time `json:"upload_time"`
	Owner        string    `json:"owner"`
}

type photoListResponse struct {
	Error bool        `json:"error"`
	Data  []photoItem `json:"data"`
}

type uploadResponse struct {
	Error        bool   `json:"error"`
	Message      string `json:"message"`
	Filename     string `json:"filename"`
	S3URL        string `json:"s3_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, code int, message string) {
	_ = writeJSON(w, code, errorResponse{Error: true, Message: message})
}
