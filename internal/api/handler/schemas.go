package handler

import (
	"time"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Surname *string `json:"surname"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
}

type adjustPointsRequest struct {
	// Delta is the textual signed integer to add to the balance, e.g.
	// "+50" or "-3". Kept as a string so malformed input is rejected by
	// the ledger with a distinct error kind instead of a JSON bind error.
	Delta string `json:"delta" validate:"required"`
}

// catalogEntryRequest covers both entry kinds; which fields are required
// depends on the kind and is enforced by the catalog service.
type catalogEntryRequest struct {
	Name         string `json:"name"`
	Slogan       string `json:"slogan"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Validity     string `json:"validity"`
	Restrictions string `json:"restrictions"`
	Category     string `json:"category"`
	PointCost    int64  `json:"point_cost"`
}

func (r *catalogEntryRequest) toDomain() *domain.CatalogEntry {
	return &domain.CatalogEntry{
		Name:         r.Name,
		Slogan:       r.Slogan,
		Title:        r.Title,
		Description:  r.Description,
		Validity:     r.Validity,
		Restrictions: r.Restrictions,
		Category:     r.Category,
		PointCost:    r.PointCost,
	}
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract
// is not coupled to internal changes.

type accountResponse struct {
	ID         string    `json:"id"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	Surname    string    `json:"surname,omitempty"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	CardNumber string    `json:"card_number,omitempty"`
	Points     *int64    `json:"points,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	resp := accountResponse{
		ID:         a.ID,
		Role:       a.Role,
		Name:       a.Name,
		Surname:    a.Surname,
		Email:      a.Email,
		Phone:      a.Phone,
		Address:    a.Address,
		City:       a.City,
		State:      a.State,
		CardNumber: a.CardNumber,
		CreatedAt:  a.CreatedAt,
	}
	if a.IsCustomer() {
		points := a.Points
		resp.Points = &points
	}
	return resp
}

type authResponse struct {
	Token   string           `json:"token,omitempty"`
	Account *accountResponse `json:"account,omitempty"`
}

type listAccountsResponse struct {
	Data  []accountResponse `json:"data"`
	Total int               `json:"total"`
}

type balanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
}

type topAccountEntry struct {
	AccountID  string `json:"account_id"`
	Name       string `json:"name"`
	Surname    string `json:"surname,omitempty"`
	CardNumber string `json:"card_number"`
	Points     int64  `json:"points"`
}

type topAccountsResponse struct {
	Data []topAccountEntry `json:"data"`
}

type entryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name,omitempty"`
	Slogan       string `json:"slogan,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Validity     string `json:"validity,omitempty"`
	Restrictions string `json:"restrictions,omitempty"`
	Category     string `json:"category,omitempty"`
	PointCost    int64  `json:"point_cost,omitempty"`
}

func toEntryResponse(e *domain.CatalogEntry) entryResponse {
	return entryResponse{
		ID:           e.ID,
		Name:         e.Name,
		Slogan:       e.Slogan,
		Title:        e.Title,
		Description:  e.Description,
		Validity:     e.Validity,
		Restrictions: e.Restrictions,
		Category:     e.Category,
		PointCost:    e.PointCost,
	}
}

type listEntriesResponse struct {
	Data []entryResponse `json:"data"`
}
