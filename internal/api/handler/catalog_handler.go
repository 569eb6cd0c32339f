package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubpuntos/loyalty-system/internal/core/domain"
	"github.com/clubpuntos/loyalty-system/internal/core/ports"
)

// CatalogHandler serves CRUD for one catalog kind. Two instances are
// registered, one per kind, sharing the same service.
type CatalogHandler struct {
	catalog ports.CatalogService
	kind    domain.CatalogKind
}

func NewCatalogHandler(catalog ports.CatalogService, kind domain.CatalogKind) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, kind: kind}
}

// List returns every entry of the handler's kind. Used by both the
// end-user browsing screens and the admin console.
//
// @Summary      List catalog entries
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listEntriesResponse
// @Router       /v1/benefits [get]
func (h *CatalogHandler) List(c echo.Context) error {
	entries, err := h.catalog.List(c.Request().Context(), h.kind)
	if err != nil {
		return err
	}

	data := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		data = append(data, toEntryResponse(e))
	}

	return c.JSON(http.StatusOK, listEntriesResponse{Data: data})
}

// Get returns a single entry by id.
//
// @Summary      Get a catalog entry
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Entry id"
// @Success      200  {object}  entryResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/benefits/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	entry, err := h.catalog.Get(c.Request().Context(), h.kind, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Create inserts a new entry of the handler's kind.
//
// @Summary      Create a catalog entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      catalogEntryRequest  true  "Entry fields"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Router       /v1/admin/benefits [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req catalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.catalog.Create(c.Request().Context(), h.kind, req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// Update replaces an entry's fields.
//
// @Summary      Update a catalog entry
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Entry id"
// @Param        body  body      catalogEntryRequest  true  "Entry fields"
// @Success      200   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/admin/benefits/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	var req catalogEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	entry, err := h.catalog.Update(c.Request().Context(), h.kind, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

// Delete removes an entry. Deleting a missing id returns 404.
//
// @Summary      Delete a catalog entry
// @Tags         catalog
// @Security     BearerAuth
// @Param        id  path  string  true  "Entry id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/admin/benefits/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), h.kind, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
