package v1

import (
	"net/http"

	"mitienda-backend/internal/domain"
	"mitienda-backend/internal/usecase"
	"mitienda-backend/pkg/utils"

	"github.com/goccy/go-json"
)

type AuthHandler struct {
	authUsecase *usecase.AuthUsecase
}

func NewAuthHandler(authUsecase *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.authUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Message: "Login successful",
		Data:    authResponse{Token: token, User: user},
	})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.authUsecase.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, domain.Response{
		Success: true,
		Message: "Registration successful",
		Data:    authResponse{Token: token, User: user},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.authUsecase.Logout(sess.ID)

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Message: "Logged out",
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if sess == nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.WriteJSON(w, http.StatusOK, domain.Response{
		Success: true,
		Data:    sess.User,
	})
}

// sessionFrom pulls the session the auth middleware stored on the context.
func sessionFrom(r *http.Request) *domain.Session {
	sess, _ := r.Context().Value(domain.SessionContextKey).(*domain.Session)
	return sess
}
