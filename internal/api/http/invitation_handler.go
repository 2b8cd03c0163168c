package http

import (
	"net/http"

	"vibe-backend/internal/domain"
	"vibe-backend/internal/service"
)

type InvitationHandler struct {
	invitations service.InvitationService
}

func NewInvitationHandler(invitations service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

type issueRequest struct {
	Email string `json:"email"`
}

type issueResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *InvitationHandler) Issue(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req issueRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inv, err := h.invitations.Issue(r.Context(), userID, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, issueResponse{
		ID:      inv.ID,
		Message: "Invitation sent successfully",
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *InvitationHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.invitations.Verify(r.Context(), req.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

type registerRequest struct {
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Code     string           `json:"code"`
	Profiles []profileRequest `json:"profiles"`
}

type profileRequest struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

func (h *InvitationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	profiles := make([]domain.Profile, 0, len(req.Profiles))
	for _, p := range req.Profiles {
		profiles = append(profiles, domain.Profile{
			Type:   domain.ProfileType(p.Type),
			Name:   p.Name,
			Avatar: p.Avatar,
			Bio:    p.Bio,
		})
	}

	user, access, refresh, err := h.invitations.Redeem(r.Context(), service.RedeemInput{
		Email:    req.Email,
		Code:     req.Code,
		Password: req.Password,
		Profiles: profiles,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenPairResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

type resendRequest struct {
	InvitationID string `json:"invitation_id"`
}

func (h *InvitationHandler) Resend(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req resendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.invitations.Resend(r.Context(), userID, req.InvitationID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation resent successfully"})
}

type listResponse struct {
	Invitations []domain.Invitation     `json:"invitations"`
	Statistics  *domain.InvitationStats `json:"statistics"`
}

func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	invitations, stats, err := h.invitations.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if invitations == nil {
		invitations = []domain.Invitation{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Invitations: invitations,
		Statistics:  stats,
	})
}
