package handlers

import (
	"net/http"
	"strconv"

	"shoestore/internal/dto"
	"shoestore/internal/models"
	"shoestore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves the back-office endpoints. Role checks live in
// the service layer; the handler only shapes requests and responses.
type AdminHandler struct {
	catalog  service.CatalogService
	orders   service.OrderService
	accounts service.AccountService
	log      *zap.Logger
}

func NewAdminHandler(catalog service.CatalogService, orders service.OrderService, accounts service.AccountService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, orders: orders, accounts: accounts, log: log}
}

// --- categories ---

func (h *AdminHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListAllCategories(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, dto.ToCategoryResponse(&cats[i]))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), service.CategoryInput{
		Name:             req.Name,
		DisplayOrder:     req.DisplayOrder,
		ParentCategoryID: req.ParentCategoryID,
		IsActive:         active,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), id, service.CategoryPatch{
		Name:             req.Name,
		DisplayOrder:     req.DisplayOrder,
		ParentCategoryID: req.ParentCategoryID,
		ClearParent:      req.ClearParent,
		IsActive:         req.IsActive,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- products ---

func (h *AdminHandler) ListProducts(c *gin.Context) {
	filter, ok := parseProductFilter(c)
	if !ok {
		return
	}
	products, total, err := h.catalog.ListAllProducts(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductListResponse(products, total))
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), service.ProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Brand:          req.Brand,
		CategoryID:     req.CategoryID,
		ListPriceCents: req.ListPriceCents,
		DiscountRate:   req.DiscountRate,
		StockQuantity:  req.StockQuantity,
		Color:          req.Color,
		AvailableSizes: req.AvailableSizes,
		ImageURL:       req.ImageURL,
		IsActive:       active,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.ProductPatch{
		Name:           req.Name,
		Description:    req.Description,
		Brand:          req.Brand,
		CategoryID:     req.CategoryID,
		ListPriceCents: req.ListPriceCents,
		DiscountRate:   req.DiscountRate,
		ClearDiscount:  req.ClearDiscount,
		StockQuantity:  req.StockQuantity,
		Color:          req.Color,
		AvailableSizes: req.AvailableSizes,
		ImageURL:       req.ImageURL,
		IsActive:       req.IsActive,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(p))
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- variants ---

func (h *AdminHandler) ListVariants(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	variants, err := h.catalog.ListVariants(c.Request.Context(), productID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for i := range variants {
		out = append(out, dto.ToVariantResponse(&variants[i]))
	}
	c.JSON(http.StatusOK, gin.H{"variants": out})
}

func (h *AdminHandler) CreateVariant(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	v, err := h.catalog.CreateVariant(c.Request.Context(), productID, service.VariantInput{
		Size:               req.Size,
		StockQuantity:      req.StockQuantity,
		PriceOverrideCents: req.PriceOverrideCents,
		IsActive:           active,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVariantResponse(v))
}

func (h *AdminHandler) UpdateVariant(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseUUIDParam(c, "variantId")
	if !ok {
		return
	}
	var req dto.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	v, err := h.catalog.UpdateVariant(c.Request.Context(), productID, variantID, service.VariantPatch{
		Size:               req.Size,
		StockQuantity:      req.StockQuantity,
		PriceOverrideCents: req.PriceOverrideCents,
		ClearPriceOverride: req.ClearPriceOverride,
		IsActive:           req.IsActive,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVariantResponse(v))
}

func (h *AdminHandler) DeleteVariant(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseUUIDParam(c, "variantId")
	if !ok {
		return
	}
	if err := h.catalog.DeleteVariant(c.Request.Context(), productID, variantID); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- images ---

func (h *AdminHandler) AddImage(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	img, err := h.catalog.AddProductImage(c.Request.Context(), productID, req.ImageURL, req.DisplayOrder)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ImageResponse{
		ID:           img.ID,
		ImageURL:     img.ImageURL,
		DisplayOrder: img.DisplayOrder,
	})
}

func (h *AdminHandler) ReorderImage(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseUUIDParam(c, "imageId")
	if !ok {
		return
	}
	var req dto.ReorderImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	if err := h.catalog.ReorderProductImage(c.Request.Context(), productID, imageID, req.DisplayOrder); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteImage(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseUUIDParam(c, "imageId")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProductImage(c.Request.Context(), productID, imageID); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- sliders ---

func (h *AdminHandler) ListSliders(c *gin.Context) {
	sliders, err := h.catalog.ListAllSliders(c.Request.Context())
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

func (h *AdminHandler) CreateSlider(c *gin.Context) {
	var req dto.CreateSliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	sl, err := h.catalog.CreateSlider(c.Request.Context(), service.SliderInput{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     active,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSliderResponse(sl))
}

func (h *AdminHandler) UpdateSlider(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSliderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	sl, err := h.catalog.UpdateSlider(c.Request.Context(), id, service.SliderPatch{
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSliderResponse(sl))
}

func (h *AdminHandler) DeleteSlider(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteSlider(c.Request.Context(), id); err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- orders ---

func (h *AdminHandler) ListOrders(c *gin.Context) {
	f, ok := parseOrderFilter(c)
	if !ok {
		return
	}
	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderListResponse(orders, total))
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(stats))
}

// --- users ---

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var f service.UserFilter
	if v := c.Query("role"); v != "" {
		role := models.Role(v)
		f.Role = &role
	}
	f.Query = c.Query("q")
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.accounts.ListUsers(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	resp := dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(users)), Total: total}
	for i := range users {
		resp.Users = append(resp.Users, dto.ToUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	u, err := h.accounts.GetUser(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(u))
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", nil))
		return
	}
	u, err := h.accounts.SetRole(c.Request.Context(), id, models.Role(req.Role))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(u))
}
