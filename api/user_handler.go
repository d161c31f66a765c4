package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-project/backend/database"
	"github.com/foodgram-project/backend/errs"
	"github.com/foodgram-project/backend/models"
	"github.com/foodgram-project/backend/services"
)

type userHandler struct {
	responder      Responder
	logger         zerolog.Logger
	userRepo       *database.UserRepo
	membershipRepo *database.MembershipRepo
	composer       services.Composer
}

func newUserHandler(userRepo *database.UserRepo, membershipRepo *database.MembershipRepo, composer services.Composer) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		composer:       composer,
	}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

type subscribeRequest struct {
	RecipesLimit int `json:"recipes_limit"`
}

type userListResponse struct {
	services.Page
	Results []services.UserView `json:"results"`
}

type subscriptionListResponse struct {
	services.Page
	Results []services.SubscriptionView `json:"results"`
}

// signup registers a new account
func (h userHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request signupRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if request.Email == "" || request.Username == "" || request.Password == "" {
			h.responder.WriteValidationError(w, "email", "email, username and password are required")
			return
		}

		exists, err := h.userRepo.ExistsByEmailOrUsername(request.Email, request.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "user", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewConflictError("user with this email or username already exists"))
			return
		}

		passwordHash, err := services.HashPassword(request.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password", err))
			return
		}

		user := models.User{
			Email:        request.Email,
			Username:     request.Username,
			FirstName:    request.FirstName,
			LastName:     request.LastName,
			PasswordHash: passwordHash,
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		view, err := h.composer.ComposeUser(&user, nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// getProfile returns the authenticated user's own profile
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		view, err := h.composer.ComposeUser(viewer, nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "user", err))
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// changePassword replaces the viewer's password after verifying the current one
func (h userHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		var request changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if !services.CheckPassword(viewer.PasswordHash, request.CurrentPassword) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("current password is wrong"))
			return
		}
		if request.NewPassword == "" {
			h.responder.WriteValidationError(w, "new_password", "new password must not be empty")
			return
		}

		passwordHash, err := services.HashPassword(request.NewPassword)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password", err))
			return
		}

		viewer.PasswordHash = passwordHash
		if err := h.userRepo.Update(viewer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"detail": "Password updated successfully"})
	}
}

// resetPassword generates a fresh password for the account with the given
// email and returns it in the response. Experimental, kept from the
// original system; there is no outbound mail delivery.
func (h userHandler) resetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByEmail(request.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user with this email not found"))
			return
		}

		newPassword, err := services.GeneratePassword(12)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("generating password", err))
			return
		}
		passwordHash, err := services.HashPassword(newPassword)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("hashing password", err))
			return
		}

		user.PasswordHash = passwordHash
		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message":      "Password was reset",
			"new_password": newPassword,
		})
	}
}

// updateAvatar stores a new avatar from a base64 data URI; an empty value
// clears the avatar
func (h userHandler) updateAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		var request avatarRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if request.Avatar == "" {
			viewer.Avatar = nil
		} else {
			decoded, err := services.DecodeImage(request.Avatar)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			viewer.Avatar = decoded
		}

		if err := h.userRepo.Update(viewer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Avatar uploaded successfully"})
	}
}

// deleteAvatar removes the viewer's avatar
func (h userHandler) deleteAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		viewer.Avatar = nil
		if err := h.userRepo.Update(viewer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Avatar deleted successfully"})
	}
}

// getUsers lists all users, paginated
func (h userHandler) getUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		page, limit := pageParams(r)

		total, err := h.userRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "users", err))
			return
		}

		users, err := h.userRepo.FindPage((page-1)*limit, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "users", err))
			return
		}

		results := make([]services.UserView, 0, len(users))
		for _, user := range users {
			view, err := h.composer.ComposeUser(user, viewer)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("compose", "user", err))
				return
			}
			results = append(results, view)
		}

		h.responder.WriteJSON(w, userListResponse{
			Page:    services.Paginate(total, page, limit, requestURL(r)),
			Results: results,
		})
	}
}

// getUser returns one user with the viewer's subscription flag
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}

		view, err := h.composer.ComposeUser(user, viewer)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "user", err))
			return
		}
		h.responder.WriteJSON(w, view)
	}
}

// getSubscriptions lists the authors the viewer follows, each with a
// truncated recipe list
func (h userHandler) getSubscriptions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())
		page, limit := pageParams(r)
		recipesLimit := queryInt(r, "recipes_limit", 5)

		total, authors, err := h.membershipRepo.Subscriptions(viewer.ID, (page-1)*limit, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "subscriptions", err))
			return
		}

		results := make([]services.SubscriptionView, 0, len(authors))
		for _, author := range authors {
			view, err := h.composer.ComposeSubscription(author, viewer, recipesLimit)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("compose", "subscription", err))
				return
			}
			results = append(results, view)
		}

		h.responder.WriteJSON(w, subscriptionListResponse{
			Page:    services.Paginate(total, page, limit, requestURL(r)),
			Results: results,
		})
	}
}

// subscribe follows an author. Self-subscription and duplicate
// subscriptions are conflicts.
func (h userHandler) subscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		recipesLimit := services.DefaultPageSize
		var request subscribeRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err == nil && request.RecipesLimit > 0 {
			recipesLimit = request.RecipesLimit
		} else if err != nil && !errors.Is(err, io.EOF) {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if id == viewer.ID {
			h.responder.WriteError(w, errs.NewConflictError("can't subscribe to yourself"))
			return
		}

		author, err := h.userRepo.FindByIDWithRecipes(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "author", err))
			return
		}
		if author == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("author not found"))
			return
		}

		subscribed, err := h.membershipRepo.IsSubscribed(viewer.ID, id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check", "subscription", err))
			return
		}
		if subscribed {
			h.responder.WriteError(w, errs.NewConflictError("already subscribed to this user"))
			return
		}

		if err := h.membershipRepo.AddSubscription(viewer.ID, id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "subscription", err))
			return
		}

		view, err := h.composer.ComposeSubscription(author, viewer, recipesLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("compose", "subscription", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, view)
	}
}

// unsubscribe removes a subscription
func (h userHandler) unsubscribe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		id, err := idParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		removed, err := h.membershipRepo.RemoveSubscription(viewer.ID, id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "subscription", err))
			return
		}
		if !removed {
			h.responder.WriteError(w, errs.NewBadRequestError("no subscription for this user"))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
