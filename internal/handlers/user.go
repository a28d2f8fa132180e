package handlers

import (
	"net/http"

	"GroceryWise/internal/middleware"
	"GroceryWise/internal/service"

	"go.uber.org/zap"
)

// UserHandler: операции с профилем текущего пользователя.
type UserHandler struct {
	Users  *service.UserService
	Logger *zap.SugaredLogger
}

func NewUserHandler(users *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// UpdateUserRequest пуст: изменяемых полей профиля пока нет.
type UpdateUserRequest struct{}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	var req UpdateUserRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	fresh, err := h.Users.UpdateProfile(r.Context(), user)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, fresh)
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	var req ChangePasswordRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	if err := h.Users.ChangePassword(r.Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("password changed", "user_id", user.ID)
	writeJSON(w, http.StatusOK, Message{Message: "Password updated successfully"})
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	if err := h.Users.Delete(r.Context(), user); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("user deleted", "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}
