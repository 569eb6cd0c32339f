package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// PointsHandler serves balance reads, adjustments, and the leaderboard.
type PointsHandler struct {
	ledger ports.LedgerService
}

func NewPointsHandler(ledger ports.LedgerService) *PointsHandler {
	return &PointsHandler{ledger: ledger}
}

// Balance returns the calling customer's balance.
//
// @Summary      Get own balance
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  balanceResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/accounts/me/balance [get]
func (h *PointsHandler) Balance(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	balance, err := h.ledger.Balance(c.Request().Context(), session.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, balanceResponse{AccountID: session.AccountID, Balance: balance})
}

// Adjust applies a signed delta to the target account's balance. The
// acting administrator is recorded in the audit trail.
//
// @Summary      Adjust an account's points
// @Tags         points
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Account id"
// @Param        body  body      adjustPointsRequest  true  "Signed delta, e.g. +50 or -3"
// @Success      200   {object}  balanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/accounts/{id}/points [post]
func (h *PointsHandler) Adjust(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req adjustPointsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accountID := c.Param("id")
	balance, err := h.ledger.Adjust(c.Request().Context(), accountID, req.Delta, session.AccountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, balanceResponse{AccountID: accountID, Balance: balance})
}

// Top returns up to limit customers ordered by descending balance.
//
// @Summary      Points leaderboard
// @Tags         points
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 10, max 100)"
// @Success      200    {object}  topAccountsResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/admin/points/top [get]
func (h *PointsHandler) Top(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	accounts, err := h.ledger.TopAccounts(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	data := make([]topAccountEntry, 0, len(accounts))
	for _, a := range accounts {
		data = append(data, topAccountEntry{
			AccountID:  a.ID,
			Name:       a.Name,
			Surname:    a.Surname,
			CardNumber: a.CardNumber,
			Points:     a.Points,
		})
	}

	return c.JSON(http.StatusOK, topAccountsResponse{Data: data})
}
