package chat

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultAdminLimit = 50
	maxAdminLimit     = 500
)

// Handler exposes the chat log to operators.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List serves GET /admin/users/{phone}/chats?limit=N, oldest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimPrefix(r.PathValue("phone"), "+")
	limit, ok := parseLimit(r.URL.Query().Get("limit"))
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		return
	}
	entries, err := h.svc.FindChronological(r.Context(), phone, limit)
	if err != nil {
		h.logger.Errorw("list chats failed", "phone", phone, "err", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"phone": phone, "entries": entries})
}

func parseLimit(s string) (int, bool) {
	if s == "" {
		return defaultAdminLimit, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return min(n, maxAdminLimit), true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
