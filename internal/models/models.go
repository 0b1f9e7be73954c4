package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "ROLE_CUSTOMER"
	RoleEmployee Role = "ROLE_EMPLOYEE"
	RoleAdmin    Role = "ROLE_ADMIN"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"not null"` // uniqueness via functional index on lower(email)
	Password  string    `gorm:"not null"` // bcrypt hash
	Role      Role      `gorm:"type:text;not null;default:'ROLE_CUSTOMER';index"`
	FirstName string    `gorm:"type:text"`
	LastName  string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }

// Category is a self-referencing tree; in practice two levels deep
// (main -> sub), which stays a UI convention rather than a constraint.
type Category struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string     `gorm:"type:text;not null"`
	DisplayOrder     int32      `gorm:"not null;default:1"`
	ParentCategoryID *uuid.UUID `gorm:"type:uuid;index"`
	IsActive         bool       `gorm:"not null;default:true;index"`
	IsDeleted        bool       `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	SubCategories []Category `gorm:"foreignKey:ParentCategoryID"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"type:text;not null"`
	Description    string    `gorm:"type:text"`
	Brand          string    `gorm:"type:text;not null;index"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ListPriceCents int64     `gorm:"not null;default:0"`
	DiscountRate   *int32    // percent, 0..100
	StockQuantity  int32     `gorm:"not null;default:0"` // denormalized; equals sum of active variant stock while variants exist
	Color          string    `gorm:"type:text"`
	AvailableSizes string    `gorm:"type:text"` // e.g. "36,37,38,39,40"
	ImageURL       string    `gorm:"type:text"`
	IsActive       bool      `gorm:"not null;default:true;index"`
	IsDeleted      bool      `gorm:"not null;default:false;index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

// DiscountedPriceCents returns the discounted price, or nil when no
// discount is active.
func (p *Product) DiscountedPriceCents() *int64 {
	if p.DiscountRate != nil && *p.DiscountRate > 0 {
		v := p.ListPriceCents - p.ListPriceCents*int64(*p.DiscountRate)/100
		return &v
	}
	return nil
}

// EffectivePriceCents is the price a bare product sells at:
// discounted price when a discount is active, list price otherwise.
func (p *Product) EffectivePriceCents() int64 {
	if d := p.DiscountedPriceCents(); d != nil {
		return *d
	}
	return p.ListPriceCents
}

// ProductVariant is a size-specific stock unit with an optional
// price override.
type ProductVariant struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:ux_variants_product_size"`
	Size               string    `gorm:"type:text;not null;uniqueIndex:ux_variants_product_size"`
	StockQuantity      int32     `gorm:"not null;default:0"`
	PriceOverrideCents *int64
	IsActive           bool `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProductVariant) TableName() string { return "product_variants" }

// UnitPriceCents resolves the selling price for this variant of p:
// override if set, else the product's effective price.
func (v *ProductVariant) UnitPriceCents(p *Product) int64 {
	if v.PriceOverrideCents != nil {
		return *v.PriceOverrideCents
	}
	return p.EffectivePriceCents()
}

type ProductImage struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL     string    `gorm:"type:text;not null"`
	DisplayOrder int32     `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (ProductImage) TableName() string { return "product_images" }

// Slider is a home page banner.
type Slider struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title        string    `gorm:"type:text"`
	Description  string    `gorm:"type:text"`
	ImageURL     string    `gorm:"type:text;not null"`
	DisplayOrder int32     `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Slider) TableName() string { return "sliders" }

// CartItem belongs to exactly one owner: a user or a guest session,
// never both. Unique per (owner, product, variant) — a repeated add
// increments Quantity instead of inserting a second row.
type CartItem struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductVariantID *uuid.UUID `gorm:"type:uuid"`
	Quantity         int32      `gorm:"not null"`
	UserID           *uuid.UUID `gorm:"type:uuid;index"`
	GuestSessionID   *string    `gorm:"type:text;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Product        Product         `gorm:"foreignKey:ProductID"`
	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID"`
}

func (CartItem) TableName() string { return "cart_items" }

// UnitPriceCents resolves the current selling price of the line.
func (c *CartItem) UnitPriceCents() int64 {
	if c.ProductVariant != nil {
		return c.ProductVariant.UnitPriceCents(&c.Product)
	}
	return c.Product.EffectivePriceCents()
}

// AvailableStock is the stock the line is validated against: variant
// stock when a variant is selected, product stock otherwise.
func (c *CartItem) AvailableStock() int32 {
	if c.ProductVariant != nil {
		return c.ProductVariant.StockQuantity
	}
	return c.Product.StockQuantity
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "ORDER_STATUS_PENDING"
	OrderStatusConfirmed OrderStatus = "ORDER_STATUS_CONFIRMED"
	OrderStatusPreparing OrderStatus = "ORDER_STATUS_PREPARING"
	OrderStatusShipped   OrderStatus = "ORDER_STATUS_SHIPPED"
	OrderStatusDelivered OrderStatus = "ORDER_STATUS_DELIVERED"
	OrderStatusCancelled OrderStatus = "ORDER_STATUS_CANCELLED"
	OrderStatusRefunded  OrderStatus = "ORDER_STATUS_REFUNDED"
)

type Order struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      string      `gorm:"type:text;not null;uniqueIndex"`
	OrderDate        time.Time   `gorm:"not null;default:now();index"`
	Status           OrderStatus `gorm:"type:text;not null;default:'ORDER_STATUS_PENDING';index"`
	TotalAmountCents int64       `gorm:"not null;default:0"` // subtotal, shipping excluded
	ShippingCents    int64       `gorm:"not null;default:0"`

	// Contact/delivery snapshot. Captured for guests and for
	// authenticated users alike so the back office sees per-order
	// addresses.
	ContactEmail     string `gorm:"type:text"`
	ContactFirstName string `gorm:"type:text"`
	ContactLastName  string `gorm:"type:text"`
	ContactPhone     string `gorm:"type:text"`
	ContactCity      string `gorm:"type:text"`
	ContactAddress   string `gorm:"type:text"`
	ContactNotes     string `gorm:"type:text"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`

	PaymentReference *string `gorm:"type:text"`
	PaymentDate      *time.Time
	IsPaid           bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

func (o *Order) GrandTotalCents() int64 { return o.TotalAmountCents + o.ShippingCents }

func (o *Order) IsGuestOrder() bool { return o.UserID == nil }

// OrderItem captures the unit price at purchase time; later product
// price changes never touch it.
type OrderItem struct {
	ID               uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID  `gorm:"type:uuid;not null"`
	ProductVariantID *uuid.UUID `gorm:"type:uuid"`
	Quantity         int32      `gorm:"not null"`
	UnitPriceCents   int64      `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Product        Product         `gorm:"foreignKey:ProductID"`
	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID"`
}

func (OrderItem) TableName() string { return "order_items" }

func (i *OrderItem) LineTotalCents() int64 { return int64(i.Quantity) * i.UnitPriceCents }
