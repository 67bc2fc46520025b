package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"profilehub/internal/app"
	"profilehub/internal/session"
	"profilehub/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	codec       *session.CookieCodec
	cookieName  string
}

// Registration and login accept either a classic form post or JSON.
type RegisterRequest struct {
	Username string `form:"username" json:"username" binding:"required,max=64"`
	Email    string `form:"email" json:"email" binding:"required,email,max=128"`
	Password string `form:"password" json:"password" binding:"required,max=128"`
}

type LoginRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email,max=128"`
	Password string `form:"password" json:"password" binding:"required,max=128"`
}

func NewAuthHandler(authService *app.AuthService, codec *session.CookieCodec, cookieName string) *AuthHandler {
	return &AuthHandler{authService: authService, codec: codec, cookieName: cookieName}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrWeakCredential):
			response.Error(c, http.StatusBadRequest, response.CodeWeakCredential, err.Error())
		case errors.Is(err, app.ErrDuplicateIdentity):
			response.Error(c, http.StatusConflict, response.CodeDuplicateIdentity, err.Error())
		default:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("register failed")
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "register failed")
		}
		return
	}

	response.OK(c, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
		default:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("login failed")
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		}
		return
	}

	cookie, err := h.codec.Encode(result.SessionID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("encode session cookie failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		return
	}
	c.SetCookie(h.cookieName, cookie, h.codec.TTLSeconds(), "/", "", false, true)

	response.OK(c, gin.H{
		"user": gin.H{
			"id":       result.User.ID,
			"username": result.User.Username,
			"email":    result.User.Email,
		},
	})
}

// Logout clears both the server-side session and the cookie. It succeeds
// even when the caller was never logged in.
func (h *AuthHandler) Logout(c *gin.Context) {
	if value, err := c.Cookie(h.cookieName); err == nil && value != "" {
		if sid, err := h.codec.Decode(value); err == nil {
			if err := h.authService.Logout(c.Request.Context(), sid); err != nil {
				zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("logout failed")
				response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "logout failed")
				return
			}
		}
	}
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	response.OK(c, gin.H{"logged_out": true})
}
