package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"profilehub/internal/app"
	"profilehub/internal/transport/http/middleware"
	"profilehub/internal/transport/http/response"
)

type AdminHandler struct {
	inspector      *app.InspectorService
	profileService *app.ProfileService
}

func NewAdminHandler(inspector *app.InspectorService, profileService *app.ProfileService) *AdminHandler {
	return &AdminHandler{inspector: inspector, profileService: profileService}
}

// RequireAdmin sits behind RequireSession and additionally demands the
// admin flag on the account.
func (h *AdminHandler) RequireAdmin(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "login required")
		c.Abort()
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("resolve admin failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "authorization failed")
		c.Abort()
		return
	}
	if !user.IsAdmin {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "admin access required")
		c.Abort()
		return
	}
	c.Next()
}

// ViewDatabase dumps every table in the store.
func (h *AdminHandler) ViewDatabase(c *gin.Context) {
	dumps, err := h.inspector.DumpTables(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("dump tables failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "dump tables failed")
		return
	}
	response.OK(c, gin.H{"tables": dumps})
}
