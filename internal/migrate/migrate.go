package migrate

import (
	"context"

	"shoestore/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	CreateExtensions       bool // pgcrypto, pg_trgm
	CreateChecks           bool // CHECK constraints
	CreateIndexes          bool // indexes and UNIQUE
	CreateFKsViaSQL        bool // FKs via Exec after AutoMigrate
	CreateUpdatedAtTrigger bool // updated_at triggers
	CreateSearchIndexes    bool // GIN trgm for product name/brand search
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		CreateExtensions:       true,
		CreateChecks:           true,
		CreateIndexes:          true,
		CreateFKsViaSQL:        true,
		CreateUpdatedAtTrigger: true,
		CreateSearchIndexes:    true,
	}
}

func MigrateStoreDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("migrating store database")

	if opt.CreateExtensions {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
			log.Error("pgcrypto error", zap.Error(err))
			return err
		}
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`).Error; err != nil {
			log.Error("pg_trgm error", zap.Error(err))
			return err
		}
	}

	log.Info("creating tables")
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Slider{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Error("AutoMigrate error", zap.Error(err))
		return err
	}

	if opt.CreateUpdatedAtTrigger {
		if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS trg_products_updated ON products;
CREATE TRIGGER trg_products_updated BEFORE UPDATE ON products
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_product_variants_updated ON product_variants;
CREATE TRIGGER trg_product_variants_updated BEFORE UPDATE ON product_variants
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_cart_items_updated ON cart_items;
CREATE TRIGGER trg_cart_items_updated BEFORE UPDATE ON cart_items
FOR EACH ROW EXECUTE FUNCTION set_updated_at();

DROP TRIGGER IF EXISTS trg_orders_updated ON orders;
CREATE TRIGGER trg_orders_updated BEFORE UPDATE ON orders
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`).Error; err != nil {
			log.Error("triggers error", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		if err := db.Exec(`
ALTER TABLE products
	DROP CONSTRAINT IF EXISTS chk_products_price_non_negative,
	ADD CONSTRAINT chk_products_price_non_negative
	CHECK (list_price_cents >= 0);
`).Error; err != nil {
			log.Error("chk products.price", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE products
	DROP CONSTRAINT IF EXISTS chk_products_discount_rate_range,
	ADD CONSTRAINT chk_products_discount_rate_range
	CHECK (discount_rate IS NULL OR (discount_rate >= 0 AND discount_rate <= 100));
`).Error; err != nil {
			log.Error("chk products.discount_rate", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE products
	DROP CONSTRAINT IF EXISTS chk_products_stock_non_negative,
	ADD CONSTRAINT chk_products_stock_non_negative
	CHECK (stock_quantity >= 0);
`).Error; err != nil {
			log.Error("chk products.stock", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE product_variants
	DROP CONSTRAINT IF EXISTS chk_variants_stock_non_negative,
	ADD CONSTRAINT chk_variants_stock_non_negative
	CHECK (stock_quantity >= 0);
`).Error; err != nil {
			log.Error("chk product_variants.stock", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE cart_items
	DROP CONSTRAINT IF EXISTS chk_cart_items_quantity_gt_zero,
	ADD CONSTRAINT chk_cart_items_quantity_gt_zero
	CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("chk cart_items.quantity", zap.Error(err))
			return err
		}

		// exactly one owner per cart line
		if err := db.Exec(`
ALTER TABLE cart_items
	DROP CONSTRAINT IF EXISTS chk_cart_items_single_owner,
	ADD CONSTRAINT chk_cart_items_single_owner
	CHECK ((user_id IS NULL) <> (guest_session_id IS NULL));
`).Error; err != nil {
			log.Error("chk cart_items.owner", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
	DROP CONSTRAINT IF EXISTS chk_order_items_quantity_gt_zero,
	ADD CONSTRAINT chk_order_items_quantity_gt_zero
	CHECK (quantity > 0);
`).Error; err != nil {
			log.Error("chk order_items.quantity", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
	DROP CONSTRAINT IF EXISTS chk_orders_status_allowed,
	ADD CONSTRAINT chk_orders_status_allowed
	CHECK (status IN (
		'ORDER_STATUS_PENDING','ORDER_STATUS_CONFIRMED','ORDER_STATUS_PREPARING',
		'ORDER_STATUS_SHIPPED','ORDER_STATUS_DELIVERED','ORDER_STATUS_CANCELLED',
		'ORDER_STATUS_REFUNDED'));
`).Error; err != nil {
			log.Error("chk orders.status", zap.Error(err))
			return err
		}
	}

	if opt.CreateIndexes {
		// case-insensitive unique email
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower
ON users (lower(email));
`).Error; err != nil {
			log.Error("ux users.email", zap.Error(err))
			return err
		}

		// (owner, product, variant) uniqueness; two partial indexes
		// because the owner is one of two nullable columns
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_cart_items_user_product_variant
ON cart_items (user_id, product_id, COALESCE(product_variant_id, '00000000-0000-0000-0000-000000000000'::uuid))
WHERE user_id IS NOT NULL;
`).Error; err != nil {
			log.Error("ux cart_items.user", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_cart_items_guest_product_variant
ON cart_items (guest_session_id, product_id, COALESCE(product_variant_id, '00000000-0000-0000-0000-000000000000'::uuid))
WHERE guest_session_id IS NOT NULL;
`).Error; err != nil {
			log.Error("ux cart_items.guest", zap.Error(err))
			return err
		}

		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_products_category_created
ON products (category_id, created_at DESC);
`).Error; err != nil {
			log.Error("ix products.category_created", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_products_active_created
ON products (is_active, is_deleted, created_at DESC);
`).Error; err != nil {
			log.Error("ix products.active_created", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS ix_orders_status_date
ON orders (status, order_date DESC);
`).Error; err != nil {
			log.Error("ix orders.status_date", zap.Error(err))
			return err
		}
	}

	if opt.CreateSearchIndexes {
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS gin_products_name_trgm
ON products USING gin (name gin_trgm_ops);
`).Error; err != nil {
			log.Error("gin products.name", zap.Error(err))
			return err
		}
		if err := db.Exec(`
CREATE INDEX IF NOT EXISTS gin_products_brand_trgm
ON products USING gin (brand gin_trgm_ops);
`).Error; err != nil {
			log.Error("gin products.brand", zap.Error(err))
			return err
		}
	}

	if opt.CreateFKsViaSQL {
		if err := db.Exec(`
ALTER TABLE products
  DROP CONSTRAINT IF EXISTS fk_products_category,
  ADD CONSTRAINT fk_products_category
    FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("fk products.category_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE product_variants
  DROP CONSTRAINT IF EXISTS fk_variants_product,
  ADD CONSTRAINT fk_variants_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("fk product_variants.product_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE product_images
  DROP CONSTRAINT IF EXISTS fk_images_product,
  ADD CONSTRAINT fk_images_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("fk product_images.product_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_product,
  ADD CONSTRAINT fk_cart_items_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("fk cart_items.product_id", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_variant,
  ADD CONSTRAINT fk_cart_items_variant
    FOREIGN KEY (product_variant_id) REFERENCES product_variants(id) ON DELETE NO ACTION;
`).Error; err != nil {
			log.Error("fk cart_items.product_variant_id", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE cart_items
  DROP CONSTRAINT IF EXISTS fk_cart_items_user,
  ADD CONSTRAINT fk_cart_items_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE NO ACTION;
`).Error; err != nil {
			log.Error("fk cart_items.user_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_order,
  ADD CONSTRAINT fk_order_items_order
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE;
`).Error; err != nil {
			log.Error("fk order_items.order_id", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_product,
  ADD CONSTRAINT fk_order_items_product
    FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE RESTRICT;
`).Error; err != nil {
			log.Error("fk order_items.product_id", zap.Error(err))
			return err
		}
		if err := db.Exec(`
ALTER TABLE order_items
  DROP CONSTRAINT IF EXISTS fk_order_items_variant,
  ADD CONSTRAINT fk_order_items_variant
    FOREIGN KEY (product_variant_id) REFERENCES product_variants(id) ON DELETE NO ACTION;
`).Error; err != nil {
			log.Error("fk order_items.product_variant_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE categories
  DROP CONSTRAINT IF EXISTS fk_categories_parent,
  ADD CONSTRAINT fk_categories_parent
    FOREIGN KEY (parent_category_id) REFERENCES categories(id) ON DELETE NO ACTION;
`).Error; err != nil {
			log.Error("fk categories.parent_category_id", zap.Error(err))
			return err
		}

		if err := db.Exec(`
ALTER TABLE orders
  DROP CONSTRAINT IF EXISTS fk_orders_user,
  ADD CONSTRAINT fk_orders_user
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE NO ACTION;
`).Error; err != nil {
			log.Error("fk orders.user_id", zap.Error(err))
			return err
		}
	}

	log.Info("store database migration complete")
	return nil
}
