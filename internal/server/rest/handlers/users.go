package handlers

import (
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server/models"
	"github.com/dmitrijs2005/finplanner/internal/server/rest/respond"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
	"github.com/gin-gonic/gin"
)

// ForgotPasswordMessage is sent whether or not the email is registered.
const ForgotPasswordMessage = "If that email is registered, a reset link has been sent"

type UserHandler struct {
	users  *services.UserService
	resets *services.ResetService
	logger logging.Logger
}

func NewUserHandler(users *services.UserService, resets *services.ResetService, logger logging.Logger) *UserHandler {
	return &UserHandler{users: users, resets: resets, logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type settingsRequest struct {
	Currency       string `json:"currency" binding:"required"`
	CurrencySymbol string `json:"currencySymbol"`
}

type sessionResponse struct {
	User  models.PublicUser `json:"user"`
	Token string            `json:"token"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	s, err := h.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Created(c, sessionResponse{User: s.User.Public(), Token: s.Token})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	s, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, sessionResponse{User: s.User.Public(), Token: s.Token})
}

func (h *UserHandler) Profile(c *gin.Context) {
	u, err := h.users.Profile(c.Request.Context(), userID(c))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, u.Public())
}

func (h *UserHandler) GetSettings(c *gin.Context) {
	s, err := h.users.Settings(c.Request.Context(), userID(c))
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, s)
}

func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	s, err := h.users.UpdateSettings(c.Request.Context(), userID(c), models.Settings{
		Currency:       req.Currency,
		CurrencySymbol: req.CurrencySymbol,
	})
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.OK(c, s)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	if err := h.resets.RequestReset(c.Request.Context(), req.Email); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Message(c, ForgotPasswordMessage)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	if err := h.resets.ConsumeReset(c.Request.Context(), req.Token, req.Password); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Message(c, "password updated")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, h.logger, respond.BindError(err))
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), userID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respond.Error(c, h.logger, err)
		return
	}
	respond.Message(c, "password updated")
}

// Currencies lists the supported currency codes with their symbols.
func (h *UserHandler) Currencies(c *gin.Context) {
	out := make([]models.Settings, 0)
	for _, code := range models.Currencies() {
		symbol, _ := models.CurrencySymbol(code)
		out = append(out, models.Settings{Currency: code, CurrencySymbol: symbol})
	}
	respond.OK(c, out)
}
