package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// AccountHandler serves profile reads/updates and the admin account
// management surface.
type AccountHandler struct {
	registry ports.RegistryService
}

func NewAccountHandler(registry ports.RegistryService) *AccountHandler {
	return &AccountHandler{registry: registry}
}

// Me returns the calling account's record.
//
// @Summary      Get own account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	account, err := h.registry.Get(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// UpdateMe applies a partial profile update to the calling account. Only
// the owner can mutate profile fields; balance, card number, and role are
// unreachable from this path.
//
// @Summary      Update own profile
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/accounts/me [patch]
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.registry.UpdateProfile(c.Request().Context(), session.AccountID, ports.ProfileUpdate{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// List returns every account from both partitions, tagged with its role.
//
// @Summary      List all accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listAccountsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.registry.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		data = append(data, toAccountResponse(a))
	}

	return c.JSON(http.StatusOK, listAccountsResponse{Data: data, Total: len(data)})
}

// Get returns a single account by id.
//
// @Summary      Get an account by id
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/accounts/{id} [get]
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.registry.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAccountResponse(account))
}

// RegisterAdmin creates a new administrator account. Reachable only
// through the admin group.
//
// @Summary      Register a new administrator
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Administrator details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/admin/accounts [post]
func (h *AccountHandler) RegisterAdmin(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.registry.Register(c.Request().Context(), ports.RegisterInput{
		Role:     domain.RoleAdmin,
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		State:    req.State,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}
