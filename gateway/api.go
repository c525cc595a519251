package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alovak/nts-userdata/gateway/models"
	"github.com/alovak/nts-userdata/nts"
	ntsmodels "github.com/alovak/nts-userdata/nts/models"
)

// API is a HTTP API for the gateway service
type API struct {
	gateway *Service
}

func NewAPI(gateway *Service) *API {
	return &API{
		gateway: gateway,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/references", func(r chi.Router) {
		r.Post("/", a.createReference)
		r.Get("/{referenceID}", a.getReference)
	})
	r.Route("/userdata", func(r chi.Router) {
		r.Post("/bankcard", a.userData(a.gateway.BankcardUserData))
		r.Post("/nonbankcard", a.userData(a.gateway.NonBankcardUserData))
		r.Post("/product", a.userData(a.gateway.ProductData))
		r.Post("/balance", a.balanceUserData)
	})
}

func (a *API) createReference(w http.ResponseWriter, r *http.Request) {
	create := models.CreateReference{}
	err := json.NewDecoder(r.Body).Decode(&create)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref, err := a.gateway.CreateReference(r.Context(), create)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ref)
}

func (a *API) getReference(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	ref, err := a.gateway.GetReference(r.Context(), referenceID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ref)
}

type userDataFunc func(ctx context.Context, req models.UserDataRequest) (models.UserDataResponse, error)

func (a *API) userData(encode userDataFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := models.UserDataRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := encode(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

func (a *API) balanceUserData(w http.ResponseWriter, r *http.Request) {
	rb := ntsmodels.RequestToBalance{}
	if err := json.NewDecoder(r.Body).Decode(&rb); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := a.gateway.BalanceUserData(r.Context(), rb)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, nts.ErrUnsupportedCombination):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, nts.ErrMissingRequiredData),
		errors.Is(err, nts.ErrInvalidValue),
		errors.Is(err, nts.ErrFieldOverflow):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
