package handlers

import (
	"net/http"
	"strconv"

	"shoestore/internal/dto"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogHandler serves the public storefront endpoints.
type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	tree, err := h.catalog.CategoryTree(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryTreeResponse(tree)})
}

func (h *CatalogHandler) Products(c *gin.Context) {
	filter, ok := parseProductFilter(c)
	if !ok {
		return
	}
	products, total, err := h.catalog.ListProducts(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductListResponse(products, total))
}

func (h *CatalogHandler) Product(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

func (h *CatalogHandler) Brands(c *gin.Context) {
	brands, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (h *CatalogHandler) Sliders(c *gin.Context) {
	sliders, err := h.catalog.ListSliders(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]dto.SliderResponse, 0, len(sliders))
	for i := range sliders {
		out = append(out, dto.ToSliderResponse(&sliders[i]))
	}
	c.JSON(http.StatusOK, gin.H{"sliders": out})
}

// parseProductFilter reads the storefront search criteria from query
// params. Invalid values answer 400 directly and return ok=false.
func parseProductFilter(c *gin.Context) (service.ProductFilter, bool) {
	var f service.ProductFilter

	if v := c.Query("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid category_id", nil))
			return f, false
		}
		f.CategoryID = &id
	}
	f.Query = c.Query("q")
	f.Brand = c.Query("brand")
	f.Sort = c.Query("sort")
	f.InStockOnly = c.Query("in_stock") == "true"

	if v := c.Query("min_price_cents"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid min_price_cents", nil))
			return f, false
		}
		f.MinPriceCents = &n
	}
	if v := c.Query("max_price_cents"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid max_price_cents", nil))
			return f, false
		}
		f.MaxPriceCents = &n
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return f, true
}
