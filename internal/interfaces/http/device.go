package http

import (
	"net/http"

	"homefront/internal/domain/notification"
)

// DeviceHandler registers the devices that receive payoff digests.
type DeviceHandler struct {
	service *notification.Service
}

func NewDeviceHandler(service *notification.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// HandleRegisterDevice registers an FCM token for the current user. Registering
// a token another user held moves it to the caller.
func (h *DeviceHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var params notification.CreateDeviceTokenParams
	if !decodeBody(w, r, &params) {
		return
	}
	params.UserID = userID

	dt, err := h.service.RegisterDevice(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dt)
}

// HandleDeviceByToken handles DELETE /api/devices/{token}
func (h *DeviceHandler) HandleDeviceByToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.service.UnregisterDevice(r.Context(), userID, r.PathValue("token")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
