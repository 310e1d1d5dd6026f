package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rewear-app/rewear-backend/api/middleware"
	"github.com/rewear-app/rewear-backend/api/responses"
	"github.com/rewear-app/rewear-backend/api/validators"
	"github.com/rewear-app/rewear-backend/internal/catalog"
	"github.com/rewear-app/rewear-backend/internal/views"
	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
	"github.com/rewear-app/rewear-backend/pkg/logger"
)

type createItemPayload struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Type        string   `json:"type" validate:"required"`
	Size        string   `json:"size" validate:"required"`
	Condition   string   `json:"condition" validate:"required"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images" validate:"required,min=1,max=5,dive,required"`
	Points      int      `json:"points" validate:"required,min=10,max=200"`
}

type swapRequestPayload struct {
	Message string `json:"message"`
}

func actorFromContext(r *http.Request) catalog.Actor {
	ctx := r.Context()
	return catalog.Actor{
		ID:      middleware.UserIDFromContext(ctx),
		Name:    middleware.UserNameFromContext(ctx),
		IsAdmin: middleware.IsAdminFromContext(ctx),
	}
}

// ListItems serves the public browse view over the available pool.
func ListItems(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		result := views.Browse(store.Items(), views.BrowseQuery{
			Search:    query.Get("search"),
			Category:  query.Get("category"),
			Size:      query.Get("size"),
			Condition: query.Get("condition"),
			Sort:      query.Get("sort"),
		})
		responses.WriteSuccess(w, result)
	}
}

// ItemFacets lists the filter options present in the available pool.
func ItemFacets(store *catalog.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, views.FacetOptions(store.Items()))
	}
}

// GetItem returns a single listing regardless of status.
func GetItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		item, err := svc.GetItem(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// CreateItem submits a new listing into the moderation queue.
func CreateItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload createItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.CreateItem(ctx, actorFromContext(r), catalog.NewItemInput{
			Title:       payload.Title,
			Description: payload.Description,
			Category:    payload.Category,
			Type:        payload.Type,
			Size:        payload.Size,
			Condition:   payload.Condition,
			Tags:        payload.Tags,
			Images:      payload.Images,
			Points:      payload.Points,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// DeleteItem removes a listing. Only the uploader or an admin may delete.
func DeleteItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		if err := svc.DeleteItem(ctx, actorFromContext(r), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// RedeemItem spends the session's points on a listing.
func RedeemItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		result, err := svc.Redeem(ctx, actorFromContext(r), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CreateSwapRequest files a pending swap request against a listing.
func CreateSwapRequest(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload swapRequestPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		request, err := svc.RequestSwap(ctx, actorFromContext(r), id, payload.Message)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}
