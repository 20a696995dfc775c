package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnlocal/jobhub/internal/security"
)

const weakPasswordMessage = "Password must be at least 8 characters and include uppercase, lowercase, a number, and a special character."

// credentials are re-sent with every command; there is no session state.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Location  string `json:"location" validate:"required"`
}

// login always answers 200; the flag in the payload carries the outcome.
func (h *CommandHandler) login(ctx *gin.Context, raw []byte) {
	var req loginRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if h.users.Authenticate(req.Username, req.Password) {
		h.log.Info("login success", "email", req.Username)
		RespondData(ctx, gin.H{"login_success": 1})
		return
	}

	RespondData(ctx, gin.H{"login_success": 0})
}

func (h *CommandHandler) signUp(ctx *gin.Context, raw []byte) {
	var req signUpRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if missing := h.missingFields(&req); len(missing) > 0 {
		h.log.Error("sign up failed, missing fields", "missing", missing)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required fields",
			"missing": missing,
		})
		return
	}

	if !security.IsStrongPassword(req.Password) {
		h.log.Error("sign up failed, weak password", "email", req.Email)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Weak password",
			"message": weakPasswordMessage,
		})
		return
	}

	// uniqueness is enforced here, not in the store
	if h.users.EmailExists(req.Email) {
		h.log.Error("sign up failed, email already exists", "email", req.Email)
		RespondError(ctx, http.StatusConflict, "Email already exists")
		return
	}

	_, err := h.users.CreateAccount(req.Password, req.Email, req.FirstName, req.LastName, req.Location)
	if err != nil {
		h.log.Error("sign up failed", "email", req.Email, "err", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create account",
			"details": err.Error(),
		})
		return
	}

	h.log.Info("sign up successful", "email", req.Email)
	RespondData(ctx, gin.H{"signed_up": 1})
}

type changeEmailRequest struct {
	credentials
	NewEmail string `json:"new_email"`
}

func (h *CommandHandler) changeEmail(ctx *gin.Context, raw []byte) {
	var req changeEmailRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if err := h.users.ChangeEmail(req.Email, req.Password, req.NewEmail); err != nil {
		h.respondChangeError(ctx, err)
		return
	}

	RespondSuccess(ctx, gin.H{"new_email": req.NewEmail})
}

type changePasswordRequest struct {
	credentials
	NewPassword string `json:"new_password"`
}

func (h *CommandHandler) changePassword(ctx *gin.Context, raw []byte) {
	var req changePasswordRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	// auth outcome is reported before the strength check
	if !h.users.Authenticate(req.Email, req.Password) {
		RespondAuthFailed(ctx)
		return
	}

	if !security.IsStrongPassword(req.NewPassword) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "New password does not meet strength requirements",
		})
		return
	}

	if err := h.users.ChangePassword(req.Email, req.Password, req.NewPassword); err != nil {
		h.respondChangeError(ctx, err)
		return
	}

	RespondSuccess(ctx, nil)
}

type changeAgeRequest struct {
	credentials
	Age json.RawMessage `json:"age"`
}

func (h *CommandHandler) changeAge(ctx *gin.Context, raw []byte) {
	var req changeAgeRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if err := h.users.ChangeAge(req.Email, req.Password, req.Age); err != nil {
		h.respondChangeError(ctx, err)
		return
	}

	RespondSuccess(ctx, nil)
}

type changeNameRequest struct {
	credentials
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *CommandHandler) changeName(ctx *gin.Context, raw []byte) {
	var req changeNameRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if !h.users.Authenticate(req.Email, req.Password) {
		RespondAuthFailed(ctx)
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "First name and last name are required",
		})
		return
	}

	if err := h.users.ChangeName(req.Email, req.Password, req.FirstName, req.LastName); err != nil {
		h.respondChangeError(ctx, err)
		return
	}

	RespondSuccess(ctx, nil)
}

type changeLocationRequest struct {
	credentials
	Location string `json:"location"`
}

func (h *CommandHandler) changeLocation(ctx *gin.Context, raw []byte) {
	var req changeLocationRequest
	if !h.decode(ctx, raw, &req) {
		return
	}

	if err := h.users.ChangeLocation(req.Email, req.Password, req.Location); err != nil {
		h.respondChangeError(ctx, err)
		return
	}

	RespondSuccess(ctx, nil)
}

func (h *CommandHandler) getLocation(ctx *gin.Context, raw []byte) {
	var req credentials
	if !h.decode(ctx, raw, &req) {
		return
	}

	location, err := h.users.Location(req.Email, req.Password)
	if err != nil {
		RespondInvalidCredentials(ctx)
		return
	}

	RespondData(ctx, gin.H{"location": location})
}

func (h *CommandHandler) getProfile(ctx *gin.Context, raw []byte) {
	var req credentials
	if !h.decode(ctx, raw, &req) {
		return
	}

	profile, err := h.users.Profile(req.Email, req.Password)
	if err != nil {
		RespondInvalidCredentials(ctx)
		return
	}

	RespondSuccess(ctx, gin.H{"profile": profile})
}
