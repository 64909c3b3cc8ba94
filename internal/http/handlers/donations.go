package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"givetrack/internal/domain"
	"givetrack/internal/donations"
	"givetrack/internal/middleware"
)

type donationCreateRequest struct {
	DonorName    string          `json:"donor_name"`
	ReceiverName string          `json:"receiver_name"`
	Amount       json.RawMessage `json:"amount"`
}

// amountText accepts the amount either as form text ("50") or as a JSON
// number (50); coercion to a numeric value happens at the store boundary.
func (r donationCreateRequest) amountText() string {
	if len(r.Amount) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Amount, &s); err == nil {
		return s
	}
	return string(r.Amount)
}

// DonationsList refreshes the cached collection from the store and serves
// one derived page. A failed refresh is logged and the prior cache stays in
// place, so the view degrades to stale rather than erroring.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	if err := a.Donations.Load(r.Context()); err != nil {
		a.Logger.Error().Err(err).Msg("donation list refresh failed")
	}

	search := r.URL.Query().Get("search")
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			page = p
		}
	}

	a.json(w, http.StatusOK, a.Donations.View(search, page))
}

// DonationsCreate persists a new record. A blank receiver defaults to the
// caller's first name; the date and id are assigned by the store, and the
// whole collection is reloaded before responding.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	var req donationCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	defaultReceiver := ""
	user, err := a.Users.GetByID(r.Context(), middleware.UserIDFromContext(r.Context()))
	switch {
	case err == nil:
		defaultReceiver = user.FirstName()
	case errors.Is(err, domain.ErrNotFound):
		// Account gone while the session was still live; the record keeps
		// whatever receiver the caller sent.
	default:
		a.Logger.Error().Err(err).Msg("load profile for default receiver failed")
		a.error(w, http.StatusInternalServerError, "store", "Error adding donation: "+err.Error())
		return
	}

	record, err := a.Donations.Add(r.Context(), donations.AddInput{
		DonorName:       req.DonorName,
		ReceiverName:    req.ReceiverName,
		Amount:          req.amountText(),
		DefaultReceiver: defaultReceiver,
	})
	if err != nil {
		if domain.IsValidation(err) {
			a.error(w, http.StatusBadRequest, "validation", err.Error())
			return
		}
		a.Logger.Error().Err(err).Msg("add donation failed")
		a.error(w, http.StatusInternalServerError, "store", "Error adding donation: "+err.Error())
		return
	}

	a.json(w, http.StatusCreated, map[string]any{
		"message": "Donation added!",
		"donation": map[string]any{
			"id":            record.ID,
			"donor_name":    record.DonorName,
			"receiver_name": record.ReceiverName,
			"amount":        record.Amount,
			"date":          record.Date,
		},
	})
}

// DonationsDelete removes a record by id after explicit confirmation.
// Deleting an id that is already gone completes quietly; there is no undo.
func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		a.error(w, http.StatusBadRequest, "confirmation_required", "Delete this donation?")
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "donation id required")
		return
	}
	a.Donations.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
