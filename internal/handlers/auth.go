package handlers

import (
	"net/http"

	"GroceryWise/internal/auth"
	"GroceryWise/internal/middleware"
	"GroceryWise/internal/service"

	"go.uber.org/zap"
)

// AuthHandler: вход, регистрация и проверка токена.
type AuthHandler struct {
	Users  *service.UserService
	Tokens *auth.TokenService
	Logger *zap.SugaredLogger
}

func NewAuthHandler(users *service.UserService, tokens *auth.TokenService, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Logger: logger}
}

// Token: ответ на успешный вход.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login принимает форму username/password и выдаёт access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, h.Logger, service.Invalid("body", "malformed form body"))
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" {
		writeError(w, h.Logger, service.Invalid("username", "field required"))
		return
	}
	if password == "" {
		writeError(w, h.Logger, service.Invalid("password", "field required"))
		return
	}

	user, err := h.Users.Authenticate(r.Context(), username, password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if !user.IsActive {
		writeError(w, h.Logger, service.ErrInactiveAccount)
		return
	}

	token, err := h.Tokens.IssueDefault(user.Email)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, Token{AccessToken: token, TokenType: "bearer"})
}

// Register создаёт пользователя.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, h.Logger, err)
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	h.Logger.Infow("user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// TestToken возвращает владельца токена.
func (h *AuthHandler) TestToken(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, h.Logger, service.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
