package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rewear-app/rewear-backend/api/responses"
	"github.com/rewear-app/rewear-backend/internal/catalog"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

// ApproveSwapRequest accepts a swap request; the listing moves to swapped in
// the same commit.
func ApproveSwapRequest(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "requestId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "request id is required"))
			return
		}

		approval, err := svc.ApproveSwapRequest(ctx, actorFromContext(r), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, approval)
	}
}

// DeclineSwapRequest turns a swap request down, leaving the listing alone.
func DeclineSwapRequest(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "requestId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "request id is required"))
			return
		}

		request, err := svc.DeclineSwapRequest(ctx, actorFromContext(r), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, request)
	}
}
