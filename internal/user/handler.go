package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint"
	complaintentity "github.com/ovaphlow/pitchfork/service-health-bot/internal/complaint/entity"
	"github.com/ovaphlow/pitchfork/service-health-bot/internal/user/entity"
)

type profileReader interface {
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)
	FindOnboarding(ctx context.Context, phone string) (*entity.OnboardingState, error)
}

// LatestComplaintFinder returns complaint.ErrNotFound when there is none.
type LatestComplaintFinder interface {
	Latest(ctx context.Context, phone string) (*complaintentity.Complaint, error)
}

// Handler exposes read-only admin endpoints for users.
type Handler struct {
	users      profileReader
	complaints LatestComplaintFinder
	logger     *zap.SugaredLogger
}

func NewHandler(users profileReader, complaints LatestComplaintFinder, logger *zap.SugaredLogger) *Handler {
	return &Handler{users: users, complaints: complaints, logger: logger}
}

// ProfileView is the admin view of one user.
type ProfileView struct {
	User            *entity.User               `json:"user"`
	Onboarding      *entity.OnboardingState    `json:"onboarding,omitempty"`
	LatestComplaint *complaintentity.Complaint `json:"latest_complaint,omitempty"`
}

// Get serves GET /admin/users/{phone}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimPrefix(r.PathValue("phone"), "+")
	ctx := r.Context()

	u, err := h.users.FindByPhone(ctx, phone)
	if errors.Is(err, ErrUserNotFound) {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		h.logger.Errorw("find user failed", "phone", phone, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		return
	}
	view := ProfileView{User: u}

	o, err := h.users.FindOnboarding(ctx, phone)
	switch {
	case err == nil:
		view.Onboarding = o
	case !errors.Is(err, ErrOnboardingNotFound):
		h.logger.Errorw("find onboarding failed", "phone", phone, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		return
	}

	c, err := h.complaints.Latest(ctx, phone)
	switch {
	case err == nil:
		view.LatestComplaint = c
	case !errors.Is(err, complaint.ErrNotFound):
		h.logger.Errorw("find complaint failed", "phone", phone, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
