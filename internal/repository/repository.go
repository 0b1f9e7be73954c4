package repository

import "gorm.io/gorm"

type Repository struct {
	DB         *gorm.DB
	Users      UserRepo
	Categories CategoryRepo
	Products   ProductRepo
	Variants   VariantRepo
	Images     ProductImageRepo
	Sliders    SliderRepo
	Carts      CartRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Users:      NewUserRepo(db),
		Categories: NewCategoryRepo(db),
		Products:   NewProductRepo(db),
		Variants:   NewVariantRepo(db),
		Images:     NewProductImageRepo(db),
		Sliders:    NewSliderRepo(db),
		Carts:      NewCartRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx runs fn against a transaction-scoped repository set.
func (r *Repository) WithTx(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
