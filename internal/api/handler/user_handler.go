package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/userforge/user-api/internal/api/metrics"
	"github.com/userforge/user-api/internal/core/domain"
	"github.com/userforge/user-api/internal/core/ports"
)

// UserHandler serves the administrative user CRUD endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns users matching the query filters. Recognised parameters:
//
//	role=ADMIN|USER
//	orderBy=<field>:ASC|DESC
//	skip=<n>&take=<n>
//
// Unrecognised parameters and malformed values are ignored, not rejected.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role     query  string  false  "Role equality filter"
// @Param        orderBy  query  string  false  "field:ASC or field:DESC"
// @Param        skip     query  int     false  "Records to skip"
// @Param        take     query  int     false  "Records to return"
// @Success      200  {array}   userResponse
// @Failure      403  {object}  map[string]string
// @Router       /users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	q := parseListQuery(c)

	users, err := h.userService.List(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponses(users))
}

func parseListQuery(c echo.Context) ports.ListQuery {
	var q ports.ListQuery

	if role, ok := domain.ParseRole(c.QueryParam("role")); ok {
		q.Role = &role
	}

	if orderBy := c.QueryParam("orderBy"); orderBy != "" {
		parts := strings.SplitN(orderBy, ":", 2)
		if len(parts) == 2 {
			switch strings.ToUpper(parts[1]) {
			case "ASC":
				q.OrderBy = parts[0]
			case "DESC":
				q.OrderBy = parts[0]
				q.Desc = true
			}
		}
	}

	if skip, err := strconv.Atoi(c.QueryParam("skip")); err == nil && skip > 0 {
		q.Skip = skip
	}
	if take, err := strconv.Atoi(c.QueryParam("take")); err == nil && take > 0 {
		q.Take = take
	}

	return q
}

// GetByID returns the user addressed by the path id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := targetUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// SearchByEmail looks up a single user by exact email.
//
// @Summary      Find a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  query  string  true  "Email to search for"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/search [get]
func (h *UserHandler) SearchByEmail(c echo.Context) error {
	user, err := h.userService.GetByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No user with that email found")
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Create registers a new user with the given role.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Update applies a partial update to the addressed user. Email, password,
// and role are updatable; id and timestamps are not.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "User id"
// @Param        body  body      map[string]string  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	user, err := targetUser(c)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	if err := c.Bind(&updates); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.userService.Update(c.Request().Context(), user, updates, domain.AdminUpdatableFields)
	if err != nil {
		recordUpdateRejection(err)
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete removes the addressed user. Hard delete.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	user, err := targetUser(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), user); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// DeleteAll removes every non-admin user.
//
// @Summary      Delete all non-admin users
// @Tags         users
// @Security     BearerAuth
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /users/ [delete]
func (h *UserHandler) DeleteAll(c echo.Context) error {
	n, err := h.userService.DeleteAllNonAdmin(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Add(float64(n))
	return c.NoContent(http.StatusNoContent)
}

// recordUpdateRejection maps a field-update pipeline error to its metrics
// reason label. Unknown errors are not counted here.
func recordUpdateRejection(err error) {
	var ve domain.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrInvalidField):
		metrics.UpdateRejectionsTotal.WithLabelValues("invalid_field").Inc()
	case errors.Is(err, domain.ErrFieldNotUpdatable):
		metrics.UpdateRejectionsTotal.WithLabelValues("field_not_updatable").Inc()
	case errors.Is(err, domain.ErrEmailTaken):
		metrics.UpdateRejectionsTotal.WithLabelValues("email_conflict").Inc()
	case errors.As(err, &ve):
		metrics.UpdateRejectionsTotal.WithLabelValues("validation_failed").Inc()
	}
}
