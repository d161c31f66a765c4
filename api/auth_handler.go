package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/errs"
	"github.com/foodgram-project/backend/services"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	auth      services.Auth
	userRepo  *database.UserRepo
}

func newAuthHandler(auth services.Auth, userRepo *database.UserRepo) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		auth:      auth,
		userRepo:  userRepo,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken string `json:"auth_token"`
	TokenType string `json:"token_type"`
}

// login exchanges email+password credentials for a bearer token
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request loginRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByEmail(request.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		// Same response for unknown email and wrong password
		if user == nil || !services.CheckPassword(user.PasswordHash, request.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("incorrect email or password"))
			return
		}

		token, err := h.auth.IssueToken(user.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("issuing token", err))
			return
		}

		h.responder.WriteJSON(w, tokenResponse{
			AuthToken: token,
			TokenType: "Bearer",
		})
	}
}

// logout acknowledges the logout; tokens are stateless and simply expire
func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{"message": "successful"})
	}
}
