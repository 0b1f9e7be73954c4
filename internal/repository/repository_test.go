package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shoestore/internal/migrate"
	"shoestore/internal/models"
	"shoestore/internal/repository"
	"shoestore/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateStoreDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCategory(t *testing.T, repo *repository.Repository, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name, IsActive: true}
	if err := repo.Categories.Create(context.Background(), c); err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return c
}

func seedProduct(t *testing.T, repo *repository.Repository, categoryID uuid.UUID, name, brand string, price int64, stock int32) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:           name,
		Brand:          brand,
		CategoryID:     categoryID,
		ListPriceCents: price,
		StockQuantity:  stock,
		IsActive:       true,
	}
	if err := repo.Products.Create(context.Background(), p); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestProductRepo_CRUDAndFilters(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	cat := seedCategory(t, repo, "Sneakers")
	other := seedCategory(t, repo, "Boots")

	runner := seedProduct(t, repo, cat.ID, "Air Runner", "Nike", 12000, 5)
	seedProduct(t, repo, cat.ID, "Court Classic", "Adidas", 8000, 0)
	seedProduct(t, repo, other.ID, "Trail Boot", "Salomon", 20000, 3)

	got, err := repo.Products.GetByID(ctx, runner.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: %v, %v", got, err)
	}
	if got.Name != "Air Runner" {
		t.Fatalf("GetByID mismatch: %+v", got)
	}

	// text query
	list, total, err := repo.Products.List(ctx, repository.ProductListFilter{Query: "runner"})
	if err != nil {
		t.Fatalf("List query: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != runner.ID {
		t.Fatalf("query filter: total=%d list=%+v", total, list)
	}

	// category filter
	_, total, err = repo.Products.List(ctx, repository.ProductListFilter{CategoryIDs: []uuid.UUID{cat.ID}})
	if err != nil {
		t.Fatalf("List category: %v", err)
	}
	if total != 2 {
		t.Fatalf("category filter total = %d, want 2", total)
	}

	// price range + in stock
	list, _, err = repo.Products.List(ctx, repository.ProductListFilter{
		MinPriceCents: ptr64(10000),
		InStockOnly:   true,
	})
	if err != nil {
		t.Fatalf("List price: %v", err)
	}
	for _, p := range list {
		if p.ListPriceCents < 10000 || p.StockQuantity <= 0 {
			t.Fatalf("filter leak: %+v", p)
		}
	}

	// sort by price ascending
	list, _, err = repo.Products.List(ctx, repository.ProductListFilter{Sort: repository.SortPriceAsc})
	if err != nil {
		t.Fatalf("List sort: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ListPriceCents > list[i].ListPriceCents {
			t.Fatalf("not sorted by price: %+v", list)
		}
	}

	brands, err := repo.Products.ListBrands(ctx)
	if err != nil {
		t.Fatalf("ListBrands: %v", err)
	}
	if len(brands) != 3 {
		t.Fatalf("brands = %v, want 3 distinct", brands)
	}

	// soft delete hides the product
	ok, err := repo.Products.SoftDelete(ctx, runner.ID)
	if err != nil || !ok {
		t.Fatalf("SoftDelete: %v %v", ok, err)
	}
	if got, _ := repo.Products.GetByID(ctx, runner.ID); got != nil {
		t.Fatalf("deleted product still visible: %+v", got)
	}
}

func TestProductRepo_TryDecrementStock(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	cat := seedCategory(t, repo, "Sneakers")
	p := seedProduct(t, repo, cat.ID, "Air Runner", "Nike", 12000, 5)

	ok, err := repo.Products.TryDecrementStock(ctx, p.ID, 3)
	if err != nil || !ok {
		t.Fatalf("decrement 3: %v %v", ok, err)
	}
	ok, err = repo.Products.TryDecrementStock(ctx, p.ID, 3)
	if err != nil {
		t.Fatalf("decrement beyond stock: %v", err)
	}
	if ok {
		t.Fatal("decrement beyond stock must report no rows")
	}

	got, _ := repo.Products.GetByID(ctx, p.ID)
	if got.StockQuantity != 2 {
		t.Fatalf("stock = %d, want 2", got.StockQuantity)
	}
}

func TestProductRepo_NoOversellUnderConcurrency(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	cat := seedCategory(t, repo, "Sneakers")
	p := seedProduct(t, repo, cat.ID, "Air Runner", "Nike", 12000, 10)

	const workers = 20
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Products.TryDecrementStock(ctx, p.ID, 1)
			if err != nil {
				t.Errorf("TryDecrementStock: %v", err)
				return
			}
			if ok {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 10 {
		t.Fatalf("%d decrements won, want exactly 10", won)
	}

	got, _ := repo.Products.GetByID(ctx, p.ID)
	if got.StockQuantity != 0 {
		t.Fatalf("stock = %d, want 0", got.StockQuantity)
	}
	if got.StockQuantity < 0 {
		t.Fatal("stock went negative")
	}
}

func TestReconcileStock(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	cat := seedCategory(t, repo, "Sneakers")
	p := seedProduct(t, repo, cat.ID, "Air Runner", "Nike", 12000, 0)

	mk := func(size string, stock int32, active bool) {
		v := &models.ProductVariant{ProductID: p.ID, Size: size, StockQuantity: stock, IsActive: active}
		if err := repo.Variants.Create(ctx, v); err != nil {
			t.Fatalf("create variant: %v", err)
		}
	}
	mk("41", 4, true)
	mk("42", 6, true)
	mk("43", 99, false) // inactive stock must not count

	if err := repo.Products.ReconcileStock(ctx, p.ID); err != nil {
		t.Fatalf("ReconcileStock: %v", err)
	}
	got, _ := repo.Products.GetByID(ctx, p.ID)
	if got.StockQuantity != 10 {
		t.Fatalf("reconciled stock = %d, want 10", got.StockQuantity)
	}
}

func TestCartRepo_OwnerScoping(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	cat := seedCategory(t, repo, "Sneakers")
	p := seedProduct(t, repo, cat.ID, "Air Runner", "Nike", 12000, 10)

	guestID := "guest-abc"
	guest := repository.CartOwner{GuestSessionID: &guestID}

	u := &models.User{Email: "owner@example.com", Password: "x", Role: models.RoleCustomer}
	if err := repo.Users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	user := repository.CartOwner{UserID: &u.ID}

	item := &models.CartItem{ProductID: p.ID, Quantity: 2, GuestSessionID: &guestID}
	if err := repo.Carts.Create(ctx, item); err != nil {
		t.Fatalf("create cart item: %v", err)
	}

	// bare-product line is found with a nil variant id
	line, err := repo.Carts.GetLine(ctx, guest, p.ID, nil)
	if err != nil || line == nil {
		t.Fatalf("GetLine: %v, %v", line, err)
	}

	// the other owner sees nothing
	if line, _ := repo.Carts.GetLineByID(ctx, user, item.ID); line != nil {
		t.Fatalf("foreign owner sees line: %+v", line)
	}
	if ok, _ := repo.Carts.Delete(ctx, user, item.ID); ok {
		t.Fatal("foreign owner deleted line")
	}

	// merge-on-login reassignment
	if err := repo.Carts.Reassign(ctx, item.ID, u.ID); err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	if line, _ := repo.Carts.GetLineByID(ctx, user, item.ID); line == nil {
		t.Fatal("reassigned line not visible to user")
	}
	if items, _ := repo.Carts.ListForOwner(ctx, guest); len(items) != 0 {
		t.Fatalf("guest still owns %d lines after reassign", len(items))
	}

	n, err := repo.Carts.ClearForOwner(ctx, user)
	if err != nil || n != 1 {
		t.Fatalf("ClearForOwner: n=%d err=%v", n, err)
	}
}

func TestOrderRepo_PaymentAndStats(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	u := &models.User{Email: "buyer@example.com", Password: "x", Role: models.RoleCustomer}
	if err := repo.Users.Create(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	o := &models.Order{
		OrderNumber:      "ORD202503141509261234",
		OrderDate:        time.Now(),
		Status:           models.OrderStatusPending,
		TotalAmountCents: 45000,
		ShippingCents:    5000,
		ContactEmail:     "buyer@example.com",
		UserID:           &u.ID,
	}
	if err := repo.Orders.Create(ctx, o); err != nil {
		t.Fatalf("create order: %v", err)
	}

	paidAt := time.Now()
	if err := repo.Orders.MarkPaid(ctx, o.ID, "TEST_20250314150926", paidAt); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}

	got, _ := repo.Orders.GetByID(ctx, o.ID)
	if !got.IsPaid || got.PaymentReference == nil || *got.PaymentReference != "TEST_20250314150926" {
		t.Fatalf("payment fields: %+v", got)
	}
	if got.Status != models.OrderStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", got.Status)
	}

	// owner scoping
	if o2, _ := repo.Orders.GetByIDForUser(ctx, o.ID, uuid.New()); o2 != nil {
		t.Fatal("foreign user sees order")
	}
	if o2, _ := repo.Orders.GetByIDForUser(ctx, o.ID, u.ID); o2 == nil {
		t.Fatal("owner cannot see order")
	}

	stats, err := repo.Orders.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalOrders != 1 || stats.PaidRevenue != 50000 {
		t.Fatalf("stats = %+v, want 1 order / 50000 revenue", stats)
	}
}

func TestCategoryRepo_SiblingsAndSoftDelete(t *testing.T) {
	repo := repository.New(setupDB(t))
	ctx := context.Background()

	parent := seedCategory(t, repo, "Men")
	child := &models.Category{Name: "Sneakers", ParentCategoryID: &parent.ID, IsActive: true}
	if err := repo.Categories.Create(ctx, child); err != nil {
		t.Fatalf("create child: %v", err)
	}

	taken, err := repo.Categories.ExistsByNameAndParent(ctx, "sneakers", &parent.ID, uuid.Nil)
	if err != nil {
		t.Fatalf("ExistsByNameAndParent: %v", err)
	}
	if !taken {
		t.Fatal("duplicate sibling name not detected (case-insensitive)")
	}

	// same name under a different parent is fine
	taken, _ = repo.Categories.ExistsByNameAndParent(ctx, "Sneakers", nil, uuid.Nil)
	if taken {
		t.Fatal("name collision across parents should be allowed")
	}

	ok, err := repo.Categories.SoftDelete(ctx, child.ID)
	if err != nil || !ok {
		t.Fatalf("SoftDelete: %v %v", ok, err)
	}
	if got, _ := repo.Categories.GetByID(ctx, child.ID); got != nil {
		t.Fatalf("deleted category still visible: %+v", got)
	}
}

func ptr64(v int64) *int64 { return &v }
