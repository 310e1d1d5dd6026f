package controllers

import (
	"net/http"

	"github.com/rewear-app/rewear-backend/api/responses"
	"github.com/rewear-app/rewear-backend/pkg/config"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ReWear-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only once the session snapshot has been hydrated.
func HealthReady(cfg *config.Config, ready func() bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ReWear-Env", cfg.App.Env)
		if ready != nil && !ready() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "session store hydrating"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
