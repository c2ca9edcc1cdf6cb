package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
)

// contactRequest is the public contact-form body. The "website" field is the
// honeypot: real users never see it, so a non-empty value marks a bot.
type contactRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	VehicleID int64  `json:"vehicleId"`
	Website   string `json:"website"`
}

func (h *Handler) contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid contact body")
		writeError(w, r, errors.Join(errBadJSON, err))
		return
	}

	_, err := h.services.LeadService.CreateLead(ctx, service.LeadInput{
		Name:      req.Name,
		Phone:     req.Phone,
		Message:   req.Message,
		VehicleID: req.VehicleID,
		Honeypot:  req.Website,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	// a honeypot hit lands here too: the bot sees the same success body
	_, _ = utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	leads, err := h.services.LeadService.ListLeads(ctx)
	if err != nil {
		log.Err(err).Msg("listing leads failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, leads, http.StatusOK)
}

func (h *Handler) deleteLead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.LeadService.DeleteLead(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("deleting lead failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
