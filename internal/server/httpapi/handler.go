// Package httpapi exposes the photo service over a JSON HTTP API under
// /api/v1. All responses share the {"error": bool, ...} envelope; write
// operations require a Bearer access token.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/musefuse/internal/common"
	"github.com/dmitrijs2005/musefuse/internal/logging"
	"github.com/dmitrijs2005/musefuse/internal/server/models"
	"github.com/dmitrijs2005/musefuse/internal/server/services"
)

// maxUploadBytes caps the multipart form kept in memory per upload.
const maxUploadBytes = 32 << 20

type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.Token, error)
	Refresh(userID int64) (*services.Token, error)
}

type PhotoService interface {
	Upload(ctx context.Context, userID int64, filename string, raw []byte) (*models.Photo, error)
	List(ctx context.Context) ([]*models.PhotoWithOwner, error)
	Resolve(ctx context.Context, filename string) (string, error)
	Delete(ctx context.Context, userID int64, filename string) error
}

type Config struct {
	SecretKey          string
	CORSAllowedOrigins []string
}

// Handler provides the HTTP handlers for authentication and photo
// operations.
type Handler struct {
	config Config
	users  UserService
	photos PhotoService
	logger logging.Logger
}

func NewHandler(config Config, users UserService, photos PhotoService, logger logging.Logger) *Handler {
	return &Handler{
		config: config,
		users:  users,
		photos: photos,
		logger: logger.With("module", "httpapi"),
	}
}

// Router builds the /api/v1 route tree. Photo retrieval by filename is
// public; everything else behind /photos, /upload and /refresh-token
// requires a token.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recoverer(h.logger))

	if len(h.config.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.config.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", h.handleRegister)
		r.Post("/login", h.handleLogin)
		r.Get("/photos/{filename}", h.handleGetPhoto)

		r.Group(func(r chi.Router) {
			r.Use(Auth([]byte(h.config.SecretKey)))
			r.Post("/refresh-token", h.handleRefreshToken)
			r.Get("/photos", h.handleListPhotos)
			r.Delete("/photos/{filename}", h.handleDeletePhoto)
			r.Post("/upload", h.handleUpload)
		})
	})

	return r
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		h.logger.Error(r.Context(), "registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	_ = writeJSON(w, http.StatusCreated, messageResponse{Message: "User created successfully"})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing username or password")
		return
	}

	token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	_ = writeJSON(w, http.StatusOK, tokenResponse{Token: token.Value, ExpiresIn: token.ExpiresIn})
}

func (h *Handler) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	token, err := h.users.Refresh(userID)
	if err != nil {
		h.logger.Error(r.Context(), "token refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not refresh token")
		return
	}

	_ = writeJSON(w, http.StatusOK, tokenResponse{Token: token.Value, ExpiresIn: token.ExpiresIn})
}

func (h *Handler) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	list, err := h.photos.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "photo listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error fetching photos")
		return
	}

	data := make([]photoItem, 0, len(list))
	for _, p := range list {
		data = append(data, photoItem{
			Filename:     p.Filename,
			URL:          p.S3URL,
			ThumbnailURL: p.ThumbnailURL,
			UploadTime:   p.UploadTime,
			Owner:        p.Owner,
		})
	}

	_ = writeJSON(w, http.StatusOK, photoListResponse{Data: data})
}

func (h *Handler) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	url, err := h.photos.Resolve(r.Context(), filename)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found")
			return
		}
		h.logger.Error(r.Context(), "photo lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (h *Handler) handleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	filename := chi.URLParam(r, "filename")

	if err := h.photos.Delete(r.Context(), userID, filename); err != nil {
		// ownership is collapsed into not-found so callers cannot probe
		// other users' photos
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Photo not found or unauthorized")
			return
		}
		h.logger.Error(r.Context(), "photo deletion failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error deleting photo")
		return
	}

	_ = writeJSON(w, http.StatusOK, messageResponse{Message: "Photo deleted successfully"})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}

	photo, err := h.photos.Upload(r.Context(), userID, header.Filename, raw)
	if err != nil {
		// undecodable input lands in the generic 500 bucket too, same as
		// any other processing failure
		if errors.Is(err, common.ErrNoFile) {
			writeError(w, http.StatusBadRequest, "No file selected")
			return
		}
		h.logger.Error(r.Context(), "upload failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Error uploading file")
		return
	}

	_ = writeJSON(w, http.StatusCreated, uploadResponse{
		Message:      "File uploaded successfully",
		Filename:     photo.Filename,
		S3URL:        photo.S3URL,
		ThumbnailURL: photo.ThumbnailURL,
	})
}
