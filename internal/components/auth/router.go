package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/aicraft/storycraft/internal/shared/config"
	"github.com/aicraft/storycraft/internal/shared/httpx"
)

type (
	Router struct {
		service servicer
		details bool
	}
)

func NewRouter(service servicer, cfg *config.Config) chi.Router {
	router := &Router{service: service, details: !cfg.IsEnvProd()}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/signup", r.Signup)
	router.Post("/login", r.Login)
	return router
}

func (r *Router) Signup(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body SignupRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeValidation, "invalid request body", err), r.details)
		return
	}

	err := r.service.Signup(ctx, body.Identifier, body.Secret)
	switch {
	case err == nil:
	case errors.Is(err, ErrMissingFields):
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeValidation, "identifier and secret are required", err), r.details)
		return
	case errors.Is(err, ErrDuplicateIdentifier):
		logger.Warn().Str("identifier", body.Identifier).Msg("Signup rejected: identifier taken")
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeConflict, "identifier already registered", err), r.details)
		return
	default:
		logger.Error().Err(err).Msg("Signup failed")
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeInternal, "signup failed", err), r.details)
		return
	}

	logger.Debug().Str("identifier", body.Identifier).Msg("Signup successful")
	httpx.WriteJSON(w, req, http.StatusCreated, SignupResponse{Message: "signup successful"})
}

func (r *Router) Login(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	var body LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeValidation, "invalid request body", err), r.details)
		return
	}

	tok, err := r.service.Login(ctx, body.Identifier, body.Secret)
	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidCredentials):
		logger.Warn().Str("identifier", body.Identifier).Msg("Login failed: invalid credentials")
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeUnauthorized, "invalid credentials", err), r.details)
		return
	default:
		logger.Error().Err(err).Msg("Login failed")
		httpx.WriteError(w, req, httpx.Wrap(httpx.CodeInternal, "login failed", err), r.details)
		return
	}

	logger.Debug().Str("identifier", body.Identifier).Msg("Login successful")
	httpx.WriteJSON(w, req, http.StatusOK, LoginResponse{Token: tok})
}
