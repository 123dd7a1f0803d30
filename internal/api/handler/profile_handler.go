package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/api/metrics"
	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

// ProfileHandler serves the authenticated user's own record.
type ProfileHandler struct {
	userService ports.UserService
}

func NewProfileHandler(userService ports.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// Get returns the acting user's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile/ [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial update to the acting user's profile. Only the
// email field is updatable here.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]string  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /profile/update [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.userService.Update(c.Request().Context(), user, updates, domain.ProfileUpdatableFields)
	if err != nil {
		recordUpdateRejection(err)
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(updated))
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword rotates the acting user's password after verifying the old
// one. This is the only write path that can change a password from a
// self-service route.
//
// @Summary      Change own password
// @Tags         profile
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Old and new password"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /profile/change-password [patch]
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), user, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes the acting user's own account. Hard delete.
//
// @Summary      Delete own account
// @Tags         profile
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /profile/delete [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), user); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
