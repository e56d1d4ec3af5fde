package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	catalogService catalog.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService catalog.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, validator: utils.NewValidator()}
}

// for eg: GET /products?q=phone&category=smartphones&sort=price_asc&page=1&pageSize=10
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		query := r.URL.Query()

		q := models.ProductQuery{
			Search:   query.Get("q"),
			Category: query.Get("category"),
			Brand:    query.Get("brand"),
			SortBy:   query.Get("sort"),
		}

		if err := utils.ValidateStruct(h.validator, q); err != nil {
			logger.Warn("Invalid product query", slog.String("error", err.Error()))
			response.Error(w, appErrors.AddValidationError("sort", "must be one of price_asc, price_desc, rating_asc, rating_desc"))
			return
		}

		page, _ := strconv.Atoi(query.Get("page"))
		pageSize, _ := strconv.Atoi(query.Get("pageSize"))

		products := h.catalogService.Query(q)

		logger.Debug("Products listed", slog.Int("matches", len(products)))
		response.Success(w, http.StatusOK, models.Paginate(products, page, pageSize))

	}
}

func (h *ProductHandler) GetFacets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.catalogService.Facets())
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, ok := parseProductID(w, r, "id")
		if !ok {
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Error("Failed to fetch product", slog.Int64("productId", id), slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)

	}
}

func parseProductID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {

	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(w, appErrors.BadRequestError("Invalid product id").WithDetail(r.PathValue(name)))
		return 0, false
	}

	return id, true
}
