package service

import (
	"context"
	"strings"
	"time"

	"shoestore/internal/models"
	"shoestore/internal/repository"

	"github.com/google/uuid"
)

type catalogService struct {
	repo *repository.Repository
	now  func() time.Time
}

func NewCatalogService(repo *repository.Repository) *catalogService {
	return &catalogService{
		repo: repo,
		now:  time.Now,
	}
}

// --- storefront ---

func (s *catalogService) CategoryTree(ctx context.Context) ([]CategoryNode, error) {
	cats, err := s.repo.Categories.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uuid.UUID][]models.Category)
	for _, c := range cats {
		if c.ParentCategoryID != nil {
			children[*c.ParentCategoryID] = append(children[*c.ParentCategoryID], c)
		}
	}

	nodes := make([]CategoryNode, 0, len(cats))
	for _, c := range cats {
		if c.ParentCategoryID != nil {
			continue
		}
		nodes = append(nodes, CategoryNode{Category: c, Children: children[c.ID]})
	}
	return nodes, nil
}

func (s *catalogService) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	ids, err := s.expandCategory(ctx, f.CategoryID, false)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.Products.List(ctx, toRepoFilter(f, ids, false))
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]string, error) {
	return s.repo.Products.ListBrands(ctx)
}

func (s *catalogService) ListSliders(ctx context.Context) ([]models.Slider, error) {
	return s.repo.Sliders.ListActive(ctx)
}

// expandCategory resolves a category filter to the category itself plus
// its direct subcategories.
func (s *catalogService) expandCategory(ctx context.Context, id *uuid.UUID, includeHidden bool) ([]uuid.UUID, error) {
	if id == nil {
		return nil, nil
	}
	cat, err := s.repo.Categories.GetByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if cat == nil || (!includeHidden && !cat.IsActive) {
		return nil, ErrCategoryNotFound
	}
	kids, err := s.repo.Categories.ListChildren(ctx, cat.ID)
	if err != nil {
		return nil, err
	}
	ids := []uuid.UUID{cat.ID}
	for _, k := range kids {
		if includeHidden || k.IsActive {
			ids = append(ids, k.ID)
		}
	}
	return ids, nil
}

// --- back office: categories ---

func (s *catalogService) ListAllCategories(ctx context.Context) ([]models.Category, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.Categories.ListAll(ctx)
}

func (s *catalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("category name is required")
	}
	if in.ParentCategoryID != nil {
		parent, err := s.repo.Categories.GetByID(ctx, *in.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}
	taken, err := s.repo.Categories.ExistsByNameAndParent(ctx, name, in.ParentCategoryID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	c := &models.Category{
		Name:             name,
		DisplayOrder:     in.DisplayOrder,
		ParentCategoryID: in.ParentCategoryID,
		IsActive:         in.IsActive,
	}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	cat, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	fields := map[string]any{}
	name := cat.Name
	parentID := cat.ParentCategoryID
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationErr("category name is required")
		}
		fields["name"] = name
	}
	if patch.ClearParent {
		parentID = nil
		fields["parent_category_id"] = nil
	} else if patch.ParentCategoryID != nil {
		parentID = patch.ParentCategoryID
		fields["parent_category_id"] = *patch.ParentCategoryID
	}
	if patch.DisplayOrder != nil {
		fields["display_order"] = *patch.DisplayOrder
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if parentID != nil {
		if err := s.checkNoCycle(ctx, id, *parentID); err != nil {
			return nil, err
		}
	}
	if name != cat.Name || !uuidPtrEqual(parentID, cat.ParentCategoryID) {
		taken, err := s.repo.Categories.ExistsByNameAndParent(ctx, name, parentID, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCategoryNameTaken
		}
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.repo.Categories.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.Categories.GetByID(ctx, id)
}

// checkNoCycle walks the parent chain from newParentID; finding id on
// the way up means the reparent would close a loop.
func (s *catalogService) checkNoCycle(ctx context.Context, id, newParentID uuid.UUID) error {
	if newParentID == id {
		return ErrCategoryCycle
	}
	seen := map[uuid.UUID]bool{id: true}
	cur := newParentID
	for {
		if seen[cur] {
			return ErrCategoryCycle
		}
		seen[cur] = true
		parent, err := s.repo.Categories.GetByID(ctx, cur)
		if err != nil {
			return err
		}
		if parent == nil {
			return ErrCategoryNotFound
		}
		if parent.ParentCategoryID == nil {
			return nil
		}
		cur = *parent.ParentCategoryID
	}
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}

	cat, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return ErrCategoryNotFound
	}
	kids, err := s.repo.Categories.ListChildren(ctx, id)
	if err != nil {
		return err
	}
	if len(kids) > 0 {
		return ErrCategoryHasContent
	}

	ok, err := s.repo.Categories.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	return nil
}

// --- back office: products ---

func (s *catalogService) ListAllProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, 0, err
	}
	ids, err := s.expandCategory(ctx, f.CategoryID, true)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.Products.List(ctx, toRepoFilter(f, ids, true))
}

func (s *catalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateProductInput(in.Name, in.Brand, in.ListPriceCents, in.DiscountRate, in.StockQuantity); err != nil {
		return nil, err
	}
	cat, err := s.repo.Categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	p := &models.Product{
		Name:           strings.TrimSpace(in.Name),
		Description:    strings.TrimSpace(in.Description),
		Brand:          strings.TrimSpace(in.Brand),
		CategoryID:     in.CategoryID,
		ListPriceCents: in.ListPriceCents,
		DiscountRate:   in.DiscountRate,
		StockQuantity:  in.StockQuantity,
		Color:          strings.TrimSpace(in.Color),
		AvailableSizes: strings.TrimSpace(in.AvailableSizes),
		ImageURL:       strings.TrimSpace(in.ImageURL),
		IsActive:       in.IsActive,
	}
	if err := s.repo.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func validateProductInput(name, brand string, price int64, rate *int32, stock int32) error {
	if strings.TrimSpace(name) == "" {
		return validationErr("product name is required")
	}
	if strings.TrimSpace(brand) == "" {
		return validationErr("brand is required")
	}
	if price < 0 {
		return validationErr("list price must not be negative")
	}
	if rate != nil && (*rate < 0 || *rate > 100) {
		return validationErr("discount rate must be between 0 and 100")
	}
	if stock < 0 {
		return validationErr("stock quantity must not be negative")
	}
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	fields := map[string]any{}
	if patch.Name != nil {
		n := strings.TrimSpace(*patch.Name)
		if n == "" {
			return nil, validationErr("product name is required")
		}
		fields["name"] = n
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.Brand != nil {
		b := strings.TrimSpace(*patch.Brand)
		if b == "" {
			return nil, validationErr("brand is required")
		}
		fields["brand"] = b
	}
	if patch.CategoryID != nil {
		cat, err := s.repo.Categories.GetByID(ctx, *patch.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = *patch.CategoryID
	}
	if patch.ListPriceCents != nil {
		if *patch.ListPriceCents < 0 {
			return nil, validationErr("list price must not be negative")
		}
		fields["list_price_cents"] = *patch.ListPriceCents
	}
	if patch.ClearDiscount {
		fields["discount_rate"] = nil
	} else if patch.DiscountRate != nil {
		if *patch.DiscountRate < 0 || *patch.DiscountRate > 100 {
			return nil, validationErr("discount rate must be between 0 and 100")
		}
		fields["discount_rate"] = *patch.DiscountRate
	}
	if patch.StockQuantity != nil {
		if *patch.StockQuantity < 0 {
			return nil, validationErr("stock quantity must not be negative")
		}
		fields["stock_quantity"] = *patch.StockQuantity
	}
	if patch.Color != nil {
		fields["color"] = strings.TrimSpace(*patch.Color)
	}
	if patch.AvailableSizes != nil {
		fields["available_sizes"] = strings.TrimSpace(*patch.AvailableSizes)
	}
	if patch.ImageURL != nil {
		fields["image_url"] = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.Products.GetByID(ctx, id)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}
	ok, err := s.repo.Products.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProductNotFound
	}
	return nil
}

// --- back office: variants ---

func (s *catalogService) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	p, err := s.repo.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return s.repo.Variants.ListByProduct(ctx, productID, false)
}

func (s *catalogService) CreateVariant(ctx context.Context, productID uuid.UUID, in VariantInput) (*models.ProductVariant, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	size := strings.TrimSpace(in.Size)
	if size == "" {
		return nil, validationErr("variant size is required")
	}
	if in.StockQuantity < 0 {
		return nil, validationErr("stock quantity must not be negative")
	}
	if in.PriceOverrideCents != nil && *in.PriceOverrideCents < 0 {
		return nil, validationErr("price override must not be negative")
	}

	v := &models.ProductVariant{
		ProductID:          productID,
		Size:               size,
		StockQuantity:      in.StockQuantity,
		PriceOverrideCents: in.PriceOverrideCents,
		IsActive:           in.IsActive,
	}
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		taken, err := tx.Variants.ExistsSize(ctx, productID, size, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return ErrSizeTaken
		}
		if err := tx.Variants.Create(ctx, v); err != nil {
			return err
		}
		return tx.Products.ReconcileStock(ctx, productID)
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *catalogService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, patch VariantPatch) (*models.ProductVariant, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}

	var out *models.ProductVariant
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		v, err := tx.Variants.GetForProduct(ctx, variantID, productID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVariantNotFound
		}

		fields := map[string]any{}
		if patch.Size != nil {
			size := strings.TrimSpace(*patch.Size)
			if size == "" {
				return validationErr("variant size is required")
			}
			taken, err := tx.Variants.ExistsSize(ctx, productID, size, variantID)
			if err != nil {
				return err
			}
			if taken {
				return ErrSizeTaken
			}
			fields["size"] = size
		}
		if patch.StockQuantity != nil {
			if *patch.StockQuantity < 0 {
				return validationErr("stock quantity must not be negative")
			}
			fields["stock_quantity"] = *patch.StockQuantity
		}
		if patch.ClearPriceOverride {
			fields["price_override_cents"] = nil
		} else if patch.PriceOverrideCents != nil {
			if *patch.PriceOverrideCents < 0 {
				return validationErr("price override must not be negative")
			}
			fields["price_override_cents"] = *patch.PriceOverrideCents
		}
		if patch.IsActive != nil {
			fields["is_active"] = *patch.IsActive
		}

		if len(fields) > 0 {
			fields["updated_at"] = s.now()
			if err := tx.Variants.UpdateFields(ctx, variantID, fields); err != nil {
				return err
			}
			if err := tx.Products.ReconcileStock(ctx, productID); err != nil {
				return err
			}
		}
		out, err = tx.Variants.GetByID(ctx, variantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *catalogService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}
	return s.repo.WithTx(func(tx *repository.Repository) error {
		v, err := tx.Variants.GetForProduct(ctx, variantID, productID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrVariantNotFound
		}
		if _, err := tx.Variants.Delete(ctx, variantID); err != nil {
			return err
		}
		return tx.Products.ReconcileStock(ctx, productID)
	})
}

// --- back office: images ---

func (s *catalogService) AddProductImage(ctx context.Context, productID uuid.UUID, imageURL string, displayOrder int32) (*models.ProductImage, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return nil, validationErr("image url is required")
	}

	img := &models.ProductImage{
		ProductID:    productID,
		ImageURL:     imageURL,
		DisplayOrder: displayOrder,
	}
	err := s.repo.WithTx(func(tx *repository.Repository) error {
		p, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		n, err := tx.Images.CountByProduct(ctx, productID)
		if err != nil {
			return err
		}
		if n >= maxProductImages {
			return ErrImageLimit
		}
		return tx.Images.Create(ctx, img)
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *catalogService) ReorderProductImage(ctx context.Context, productID, imageID uuid.UUID, displayOrder int32) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}
	img, err := s.repo.Images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil || img.ProductID != productID {
		return ErrImageNotFound
	}
	return s.repo.Images.UpdateDisplayOrder(ctx, imageID, displayOrder)
}

func (s *catalogService) DeleteProductImage(ctx context.Context, productID, imageID uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}
	img, err := s.repo.Images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil || img.ProductID != productID {
		return ErrImageNotFound
	}
	ok, err := s.repo.Images.Delete(ctx, imageID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrImageNotFound
	}
	return nil
}

// --- back office: sliders ---

func (s *catalogService) ListAllSliders(ctx context.Context) ([]models.Slider, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.Sliders.ListAll(ctx)
}

func (s *catalogService) CreateSlider(ctx context.Context, in SliderInput) (*models.Slider, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ImageURL) == "" {
		return nil, validationErr("slider image url is required")
	}
	sl := &models.Slider{
		Title:        strings.TrimSpace(in.Title),
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		DisplayOrder: in.DisplayOrder,
		IsActive:     in.IsActive,
	}
	if err := s.repo.Sliders.Create(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *catalogService) UpdateSlider(ctx context.Context, id uuid.UUID, patch SliderPatch) (*models.Slider, error) {
	if _, _, err := requireStaff(ctx); err != nil {
		return nil, err
	}
	sl, err := s.repo.Sliders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sl == nil {
		return nil, ErrSliderNotFound
	}

	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		fields["description"] = strings.TrimSpace(*patch.Description)
	}
	if patch.ImageURL != nil {
		u := strings.TrimSpace(*patch.ImageURL)
		if u == "" {
			return nil, validationErr("slider image url is required")
		}
		fields["image_url"] = u
	}
	if patch.DisplayOrder != nil {
		fields["display_order"] = *patch.DisplayOrder
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.repo.Sliders.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.Sliders.GetByID(ctx, id)
}

func (s *catalogService) DeleteSlider(ctx context.Context, id uuid.UUID) error {
	if _, _, err := requireStaff(ctx); err != nil {
		return err
	}
	ok, err := s.repo.Sliders.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSliderNotFound
	}
	return nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
