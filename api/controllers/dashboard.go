package controllers

import (
	"net/http"

	"github.com/rewear-app/rewear-backend/api/middleware"
	"github.com/rewear-app/rewear-backend/api/responses"
	"github.com/rewear-app/rewear-backend/internal/catalog"
	"github.com/rewear-app/rewear-backend/internal/identity"
	"github.com/rewear-app/rewear-backend/internal/views"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

// Dashboard serves the caller's listings, swap traffic and point balance.
func Dashboard(store *catalog.Store, ident identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := middleware.UserIDFromContext(ctx)

		points := 0
		if user, ok := ident.Current(ctx); ok && user.ID == userID {
			points = user.Points
		}

		dashboard := views.BuildDashboard(store.Items(), store.SwapRequests(), userID, points)
		responses.WriteSuccess(w, dashboard)
	}
}
