package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/middleware"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/service"
)

type AuthHandler struct {
	auth  *service.AuthService
	users *service.UserService
	log   logger.Logger
}

func NewAuthHandler(auth *service.AuthService, users *service.UserService, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, log: log.With("handler", "auth")}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User   userResponse       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondValidation(w, r, map[string]string{
			"email":    "email is required",
			"password": "password is required",
		})
		return
	}

	user, tokens, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Login successful", loginResponse{
		User:   toUserResponse(user),
		Tokens: tokens,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		respondValidation(w, r, map[string]string{"refreshToken": "refreshToken is required"})
		return
	}

	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Token refreshed successfully", tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	if err := h.auth.Logout(r.Context(), userID); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.users.Get(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Profile retrieved successfully", toUserResponse(user))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword always answers 200 so the endpoint cannot be used to
// probe which emails exist.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		respondValidation(w, r, map[string]string{"email": "email is required"})
		return
	}

	if err := h.auth.ForgotPassword(r.Context(), req.Email); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "If the email exists, a reset token has been sent", nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.Token == "" {
		fieldErrors["token"] = "token is required"
	}
	if len(req.NewPassword) < 8 {
		fieldErrors["newPassword"] = "newPassword must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		respondValidation(w, r, fieldErrors)
		return
	}

	if err := h.auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password reset successfully", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	fieldErrors := map[string]string{}
	if req.CurrentPassword == "" {
		fieldErrors["currentPassword"] = "currentPassword is required"
	}
	if len(req.NewPassword) < 8 {
		fieldErrors["newPassword"] = "newPassword must be at least 8 characters"
	}
	if len(fieldErrors) > 0 {
		respondValidation(w, r, fieldErrors)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(w, r, h.log, err)
		return
	}
	respondSuccess(w, http.StatusOK, "Password changed successfully", nil)
}
