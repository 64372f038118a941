package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fmcg-app/catalog-api/internal/api/metrics"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

// UserHandler serves the /api/users routes. Responses never carry password
// hashes: domain.User does not serialise them and the service clears them.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /api/users/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Search handles GET /api/users/search.
//
// @Summary      Search users by username substring
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  query     string  true  "Case-insensitive substring"
// @Success      200       {array}   domain.User
// @Failure      400       {object}  messageResponse
// @Failure      401       {object}  messageResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c echo.Context) error {
	q, err := query.UserSearch(c.QueryParams())
	if err != nil {
		return err
	}
	return h.find(c, q)
}

// Sort handles GET /api/users/sort.
//
// @Summary      Sort users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        sortBy  query     string  true   "username or role"
// @Param        order   query     string  false  "asc (default) or desc"
// @Success      200     {array}   domain.User
// @Failure      400     {object}  messageResponse
// @Failure      401     {object}  messageResponse
// @Router       /users/sort [get]
func (h *UserHandler) Sort(c echo.Context) error {
	q, err := query.UserSort(c.QueryParams())
	if err != nil {
		return err
	}
	return h.find(c, q)
}

func (h *UserHandler) find(c echo.Context, q query.UserQuery) error {
	users, err := h.service.Find(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /api/users/:id.
//
// @Summary      Update a user's username and/or role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /api/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("user", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}
