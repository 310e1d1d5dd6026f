package controllers

import (
	"net/http"

	"github.com/rewear-app/rewear-backend/api/responses"
	"github.com/rewear-app/rewear-backend/api/validators"
	"github.com/rewear-app/rewear-backend/internal/identity"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	User  *identity.User `json:"user"`
	Ready bool           `json:"ready"`
}

// Login establishes a session for the given email. The password is required
// by the payload contract but never checked against anything.
func Login(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := svc.Login(ctx, payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, session)
	}
}

// Signup registers a new account and logs it in.
func Signup(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload signupPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		session, err := svc.Signup(ctx, payload.Name, payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// Logout clears the active session and its snapshot.
func Logout(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Logout(ctx); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"logged_out": true})
	}
}

// Session reports the active session, if any, and whether hydration finished.
func Session(svc identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := sessionResponse{Ready: svc.Ready()}
		if user, ok := svc.Current(r.Context()); ok {
			resp.User = &user
		}
		responses.WriteSuccess(w, resp)
	}
}
