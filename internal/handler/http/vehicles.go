package http

import (
	"net/http"

	"github.com/MKhiriev/autolot/internal/logger"
	"github.com/MKhiriev/autolot/internal/service"
	"github.com/MKhiriev/autolot/internal/store"
	"github.com/MKhiriev/autolot/internal/utils"
	"github.com/MKhiriev/autolot/models"
)

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	filter := store.VehicleFilter{Status: r.URL.Query().Get("status")}

	vehicles, err := h.services.VehicleService.List(ctx, filter)
	if err != nil {
		log.Err(err).Msg("listing vehicles failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, vehicles, http.StatusOK)
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	vehicle, err := h.services.VehicleService.Get(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, vehicle, http.StatusOK)
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	form, err := parseVehicleForm(r)
	if err != nil {
		log.Err(err).Msg("invalid create form")
		writeError(w, r, err)
		return
	}

	input, err := service.ParseVehicleInput(form.fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := h.services.VehicleService.Create(ctx, input, form.files, form.externalURLs)
	if err != nil {
		log.Err(err).Msg("creating vehicle failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.CreatedResponse{ID: id}, http.StatusCreated)
}

func (h *Handler) updateVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	form, err := parseVehicleForm(r)
	if err != nil {
		log.Err(err).Msg("invalid update form")
		writeError(w, r, err)
		return
	}

	input, err := service.ParseVehicleInput(form.fields)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.VehicleService.Update(ctx, id, input, form.files, form.externalURLs); err != nil {
		log.Err(err).Int64("id", id).Msg("updating vehicle failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	id, err := idParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.VehicleService.Delete(ctx, id); err != nil {
		log.Err(err).Int64("id", id).Msg("deleting vehicle failed")
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}
