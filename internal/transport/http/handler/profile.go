package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"profilehub/internal/app"
	"profilehub/internal/model"
	"profilehub/internal/transport/http/middleware"
	"profilehub/internal/transport/http/response"
)

type ProfileHandler struct {
	profileService *app.ProfileService
	maxPictureSize int64
}

func NewProfileHandler(profileService *app.ProfileService, maxPictureSizeMB int) *ProfileHandler {
	if maxPictureSizeMB <= 0 {
		maxPictureSizeMB = 5
	}
	return &ProfileHandler{
		profileService: profileService,
		maxPictureSize: int64(maxPictureSizeMB) << 20,
	}
}

// Dashboard returns the record behind the current session.
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "login required")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("load profile failed")
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load profile failed")
		return
	}

	response.OK(c, gin.H{"user": profileView(user)})
}

// UpdateProfile accepts a multipart form with optional username, email and
// profile_picture fields; untouched fields keep their values.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthenticated, "login required")
		return
	}

	input := app.UpdateProfileInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
	}

	if fileHeader, err := c.FormFile("profile_picture"); err == nil {
		if fileHeader.Size > h.maxPictureSize {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "picture too large")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to open uploaded file")
			return
		}
		defer file.Close()
		input.Picture = &app.PictureUpload{
			Filename: fileHeader.Filename,
			File:     file,
		}
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrDuplicateIdentity):
			response.Error(c, http.StatusConflict, response.CodeDuplicateIdentity, err.Error())
		case errors.Is(err, app.ErrUnsupportedFileType):
			response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFileType, err.Error())
		case errors.Is(err, app.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, err.Error())
		default:
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("update profile failed")
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update profile failed")
		}
		return
	}

	response.OK(c, gin.H{"user": profileView(user)})
}

func profileView(user *model.User) gin.H {
	view := gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}
	if user.ProfilePicture != "" {
		view["profile_picture"] = user.ProfilePicture
	}
	return view
}
