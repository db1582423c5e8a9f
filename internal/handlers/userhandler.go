package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/justsurfingit/job-board/internal/apperrors"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/logging"
	"github.com/justsurfingit/job-board/internal/middleware"
	"github.com/justsurfingit/job-board/internal/services"
)

type UserHandler struct {
	UserService *services.UserService
	Session     *auth.Session
	Revoker     auth.Revoker
	Log         *logging.Logger
}

func NewUserHandler(u *services.UserService, session *auth.Session, revoker auth.Revoker, log *logging.Logger) *UserHandler {
	return &UserHandler{
		UserService: u,
		Session:     session,
		Revoker:     revoker,
		Log:         log,
	}
}

// Register is POST /user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest(registerMessage(err), err))
		return
	}

	user, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Session.SendToken(c, user, http.StatusOK, "User Registered!"); err != nil {
		_ = c.Error(apperrors.Internal("Failed to issue session", err))
	}
}

// Login is POST /user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.BadRequest("Please provide email ,password and role.", err))
		return
	}

	user, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Session.SendToken(c, user, http.StatusOK, "User Logged In!"); err != nil {
		_ = c.Error(apperrors.Internal("Failed to issue session", err))
	}
}

// Logout is GET /user/logout
func (h *UserHandler) Logout(c *gin.Context) {
	if claims, ok := middleware.CurrentClaims(c); ok {
		ttl := h.Session.Tokens.Remaining(claims)
		if err := h.Revoker.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			// the cookie is still cleared below
			h.Log.Warn("failed to revoke token", "err", err)
		}
	}

	h.Session.ClearToken(c)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged Out Successfully.",
	})
}

// GetUser is GET /user/getuser
func (h *UserHandler) GetUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.BadRequest(middleware.MsgNotAuthorized, nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

func registerMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid JSON format: " + err.Error()
	}

	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return "Please fill full form!"
		}
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Name":
		return "Name must contain between 3 and 30 characters."
	case "Email":
		return "Please provide a valid Email!"
	case "Password":
		return "Password must contain between 8 and 32 characters."
	case "Role":
		return services.MsgInvalidRole
	}
	return "Invalid " + fe.Field() + "."
}
