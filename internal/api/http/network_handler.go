package http

import (
	"net/http"

	"vibe-backend/internal/service"
)

type NetworkHandler struct {
	network service.NetworkService
}

func NewNetworkHandler(network service.NetworkService) *NetworkHandler {
	return &NetworkHandler{network: network}
}

func (h *NetworkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	stats, err := h.network.ComputeStats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
