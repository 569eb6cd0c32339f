package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// AuthHandler serves self-registration and login.
type AuthHandler struct {
	registry ports.RegistryService
}

func NewAuthHandler(registry ports.RegistryService) *AuthHandler {
	return &AuthHandler{registry: registry}
}

// Register creates a new customer account.
//
// @Summary      Register a new customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.registry.Register(c.Request().Context(), ports.RegisterInput{
		Role:     domain.RoleCustomer,
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

	resp := toAccountResponse(account)
	return c.JSON(http.StatusCreated, authResponse{Account: &resp})
}

// Login authenticates an account and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.registry.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	resp := toAccountResponse(account)
	return c.JSON(http.StatusOK, authResponse{Token: token, Account: &resp})
}
