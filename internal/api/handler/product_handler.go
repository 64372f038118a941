package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fmcg-app/catalog-api/internal/api/metrics"
	"github.com/fmcg-app/catalog-api/internal/core/ports"
	"github.com/fmcg-app/catalog-api/internal/core/query"
)

// ProductHandler serves the /api/products routes.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products.
//
// @Summary      List products
// @Description  Filters are combined with AND. Pagination is 1-based; limit is capped at 100.
// @Tags         products
// @Produce      json
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Page size (default 10)"
// @Param        category    query     string  false  "Exact category"
// @Param        price_band  query     string  false  "Inclusive price range, e.g. 10-50"
// @Param        name        query     string  false  "Case-insensitive name substring"
// @Success      200         {array}   domain.Product
// @Failure      400         {object}  messageResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	q, err := query.ProductList(c.QueryParams())
	if err != nil {
		return err
	}
	return h.find(c, q)
}

// Search handles GET /api/products/search.
//
// @Summary      Search products by name substring
// @Tags         products
// @Produce      json
// @Param        name  query     string  true  "Case-insensitive substring"
// @Success      200   {array}   domain.Product
// @Failure      400   {object}  messageResponse
// @Router       /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	q, err := query.ProductSearch(c.QueryParams())
	if err != nil {
		return err
	}
	return h.find(c, q)
}

// Sort handles GET /api/products/sort.
//
// @Summary      Sort products
// @Tags         products
// @Produce      json
// @Param        sortBy  query     string  true   "name or price"
// @Param        order   query     string  false  "asc (default) or desc"
// @Success      200     {array}   domain.Product
// @Failure      400     {object}  messageResponse
// @Router       /products/sort [get]
func (h *ProductHandler) Sort(c echo.Context) error {
	q, err := query.ProductSort(c.QueryParams())
	if err != nil {
		return err
	}
	return h.find(c, q)
}

func (h *ProductHandler) find(c echo.Context, q query.ProductQuery) error {
	products, err := h.service.Find(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  messageResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), toProductInput(req))
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("product", "create").Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update handles PUT /api/products/:id. The body replaces every writable field.
//
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("product", "update").Inc()
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.MutationsTotal.WithLabelValues("product", "delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

func toProductInput(req productRequest) ports.ProductInput {
	return ports.ProductInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
	}
}
