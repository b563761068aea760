package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookello/booking-console/internal/core/domain"
	"github.com/bookello/booking-console/internal/core/ports"
)

// ProfileHandler applies profile edits: the change goes to the backend first,
// then the echoed fields are folded into the local session so every consumer
// observes a consistent record without a re-login.
type ProfileHandler struct {
	auth    ports.Authenticator
	backend ports.BackendGateway
	store   ports.SessionStore
}

func NewProfileHandler(auth ports.Authenticator, backend ports.BackendGateway, store ports.SessionStore) *ProfileHandler {
	return &ProfileHandler{auth: auth, backend: backend, store: store}
}

type profileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// Update pushes a partial profile edit to the backend and merges the result
// into the session. Fields absent from the payload are preserved.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to update"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /profile [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	if h.store.Current() == nil {
		return domain.ErrNoSession
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	echoed, err := h.backend.UpdateProfile(c.Request().Context(), h.store.Token(), domain.SessionPatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}

	user, err := h.auth.UpdateUser(c.Request().Context(), echoed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}

// UploadPhoto accepts a multipart avatar and stores the returned reference on
// the session.
//
// @Summary      Upload profile photo
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "Avatar image"
// @Success      200    {object}  sessionResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /profile/photo [post]
func (h *ProfileHandler) UploadPhoto(c echo.Context) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is required")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "photo file is unreadable")
	}
	defer src.Close()

	user, err := h.auth.UploadPhoto(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{User: user})
}
