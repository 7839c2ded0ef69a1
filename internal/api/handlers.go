package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dishcovery/api/internal/config"
	apperrors "github.com/dishcovery/api/internal/errors"
	"github.com/dishcovery/api/internal/services/models"
	"github.com/dishcovery/api/internal/services/recipe"
	"github.com/dishcovery/api/internal/validation"
)

// Server holds the route shell's collaborators. All of them are immutable
// after startup.
type Server struct {
	cfg       *config.Config
	registry  *recipe.Registry
	generator *recipe.Service
	keys      *models.Client
}

// NewServer creates the API server
func NewServer(cfg *config.Config, registry *recipe.Registry, generator *recipe.Service, keys *models.Client) *Server {
	return &Server{
		cfg:       cfg,
		registry:  registry,
		generator: generator,
		keys:      keys,
	}
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
	Debug   string `json:"debug,omitempty"`
}

type errorResponse struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

type generateResponse struct {
	Success bool           `json:"success"`
	Recipe  *recipe.Recipe `json:"recipe"`
	Meta    recipe.Meta    `json:"meta"`
	Warning string         `json:"warning,omitempty"`
}

type generateJSONRequest struct {
	TextPrompt          string `json:"text_prompt"`
	Language            string `json:"language"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	CuisinePreference   string `json:"cuisine_preference"`
	Provider            string `json:"provider"`
	APIKey              string `json:"api_key"`
	Model               string `json:"model"`
}

// HandleGenerateRecipe accepts either a multipart form with an `image` file
// plus option fields, or a JSON body with a text prompt. The image wins when
// both are present.
func (s *Server) HandleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req recipe.GenerationRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			s.writeError(w, r, apperrors.NewValidationError(
				"Could not parse multipart form", "invalid_request",
				"Send the image as a multipart field named 'image'."))
			return
		}

		file, header, err := r.FormFile("image")
		switch {
		case err == nil:
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				s.writeError(w, r, apperrors.NewValidationError(
					"Could not read uploaded file", "invalid_request", ""))
				return
			}
			mimeType, valErr := validation.ValidateImage(header.Filename, data, s.cfg.AllowedExtensions)
			if valErr != nil {
				s.writeError(w, r, valErr)
				return
			}
			req.Image = &recipe.ImagePayload{Data: data, MimeType: mimeType}
		case errors.Is(err, http.ErrMissingFile):
			// fall through to the text prompt, if any
		default:
			s.writeError(w, r, apperrors.NewValidationError(
				"Could not read uploaded file", "invalid_request", ""))
			return
		}

		req.TextPrompt = r.FormValue("text_prompt")
		req.Language = r.FormValue("language")
		req.DietaryRestrictions = r.FormValue("dietary_restrictions")
		req.CuisinePreference = r.FormValue("cuisine_preference")
		req.Provider = r.FormValue("provider")
		req.APIKey = r.FormValue("api_key")
		req.Model = r.FormValue("model")

		if req.Image == nil && strings.TrimSpace(req.TextPrompt) == "" {
			s.writeError(w, r, apperrors.NewValidationError(
				"No image file provided", "missing_file",
				"Attach an image file or provide a text_prompt field."))
			return
		}
	} else {
		var body generateJSONRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, r, apperrors.NewValidationError(
				"Invalid request body", "invalid_request",
				"Send a JSON object with a text_prompt field."))
			return
		}
		req = recipe.GenerationRequest{
			TextPrompt:          body.TextPrompt,
			Language:            body.Language,
			DietaryRestrictions: body.DietaryRestrictions,
			CuisinePreference:   body.CuisinePreference,
			Provider:            body.Provider,
			APIKey:              body.APIKey,
			Model:               body.Model,
		}
	}

	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, generateResponse{
		Success: true,
		Recipe:  result.Recipe,
		Meta:    result.Meta,
		Warning: result.Warning,
	})
}

type validateKeyRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"api_key"`
}

type validateKeyResponse struct {
	Success bool               `json:"success"`
	Valid   bool               `json:"valid"`
	Models  []models.ModelInfo `json:"models"`
	Error   string             `json:"error,omitempty"`
}

// HandleValidateKey checks a provider API key and returns the ranked model
// menu. Independent of the generation path.
func (s *Server) HandleValidateKey(w http.ResponseWriter, r *http.Request) {
	var body validateKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, apperrors.NewValidationError(
			"Invalid request body", "invalid_request",
			"Send a JSON object with provider and api_key fields."))
		return
	}

	desc, ok := s.registry.Resolve(body.Provider)
	if !ok {
		s.writeError(w, r, apperrors.NewValidationError(
			"Unsupported provider: "+body.Provider, "invalid_provider",
			"Supported providers are gemini, openai and anthropic."))
		return
	}

	if strings.TrimSpace(body.APIKey) == "" {
		s.writeError(w, r, apperrors.NewValidationError(
			"No API key provided", "missing_api_key", desc.KeyHint))
		return
	}

	result, err := s.keys.Validate(r.Context(), string(desc.ID), body.APIKey)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if result.Models == nil {
		result.Models = []models.ModelInfo{}
	}
	s.writeJSON(w, http.StatusOK, validateKeyResponse{
		Success: true,
		Valid:   result.Valid,
		Models:  result.Models,
		Error:   result.Error,
	})
}

type providerInfo struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	DefaultModel string `json:"default_model"`
	KeyHint      string `json:"key_hint"`
}

// HandleListProviders returns the static provider menu.
func (s *Server) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	descs := s.registry.List()
	infos := make([]providerInfo, 0, len(descs))
	for _, d := range descs {
		infos = append(infos, providerInfo{
			ID:           string(d.ID),
			Label:        d.Label,
			DefaultModel: d.DefaultModel,
			KeyHint:      d.KeyHint,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"providers": infos,
	})
}

// HandleNotFound renders unknown paths in the uniform error envelope instead
// of the router's plain-text default.
func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, apperrors.NewNotFoundError(
		"Resource not found: "+r.URL.Path, "not_found",
		"See GET / for the endpoint directory."))
}

// HandleRoot returns service information and the endpoint directory.
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to Dishcovery API",
		"version": s.cfg.ServiceVersion,
		"endpoints": map[string]string{
			"health":          "/health",
			"generate_recipe": "/api/generate-recipe",
			"validate_key":    "/api/validate-key",
			"providers":       "/api/providers",
		},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps core errors to the uniform envelope. Raw error text only
// leaks into the envelope in development mode; otherwise it is logged and
// the caller sees a stable code, message and hint.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	var provErr *recipe.ProviderError

	switch {
	case errors.As(err, &appErr):
		detail := errorDetail{
			Code:    appErr.ErrorCode,
			Message: appErr.Message,
			Hint:    appErr.Hint,
		}
		if s.cfg.IsDevelopment() {
			if appErr.Debug != "" {
				detail.Debug = appErr.Debug
			} else if appErr.Err != nil {
				detail.Debug = appErr.Err.Error()
			}
		}
		if appErr.StatusCode >= 500 {
			slog.Error("Request failed", "code", appErr.ErrorCode, "error", err, "path", r.URL.Path)
		}
		s.writeJSON(w, appErr.StatusCode, errorResponse{Success: false, Error: detail})

	case errors.As(err, &provErr):
		detail := errorDetail{
			Code:    provErr.ErrorCode,
			Message: provErr.Message,
			Hint:    provErr.Hint,
		}
		if s.cfg.IsDevelopment() {
			detail.Debug = provErr.DebugDetail
		}
		slog.Warn("Provider call failed",
			"code", provErr.ErrorCode,
			"detail", provErr.DebugDetail,
			"path", r.URL.Path,
		)
		s.writeJSON(w, provErr.HTTPStatus, errorResponse{Success: false, Error: detail})

	default:
		slog.Error("Unhandled error", "error", err, "path", r.URL.Path)
		detail := errorDetail{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		}
		if s.cfg.IsDevelopment() {
			detail.Debug = err.Error()
		}
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Success: false, Error: detail})
	}
}
