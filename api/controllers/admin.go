package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rewear-app/rewear-backend/api/responses"
	"github.com/rewear-app/rewear-backend/internal/catalog"
	"github.com/rewear-app/rewear-backend/internal/views"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

// AdminQueue serves the moderation buckets, optionally filtered by search.
func AdminQueue(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queue := views.BuildModerationQueue(store.Items(), r.URL.Query().Get("search"))
		responses.WriteSuccess(w, queue)
	}
}

// AdminStats serves the platform-wide moderation counters.
func AdminStats(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := views.BuildModerationStats(store.Items(), store.SwapRequests())
		responses.WriteSuccess(w, stats)
	}
}

// AdminApproveItem releases a listing from moderation.
func AdminApproveItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		item, err := svc.ApproveItem(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// AdminRejectItem turns a listing away from the browsable pool.
func AdminRejectItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		item, err := svc.RejectItem(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}
