package models

import "testing"

func i64(v int64) *int64 { return &v }
func i32(v int32) *int32 { return &v }

func TestProductPricing(t *testing.T) {
	p := Product{ListPriceCents: 10000}

	if d := p.DiscountedPriceCents(); d != nil {
		t.Fatalf("expected no discount, got %d", *d)
	}
	if got := p.EffectivePriceCents(); got != 10000 {
		t.Fatalf("effective price = %d, want 10000", got)
	}

	p.DiscountRate = i32(25)
	d := p.DiscountedPriceCents()
	if d == nil || *d != 7500 {
		t.Fatalf("discounted price = %v, want 7500", d)
	}
	if got := p.EffectivePriceCents(); got != 7500 {
		t.Fatalf("effective price = %d, want 7500", got)
	}

	// zero rate means no discount
	p.DiscountRate = i32(0)
	if d := p.DiscountedPriceCents(); d != nil {
		t.Fatalf("zero rate should not discount, got %d", *d)
	}
}

func TestVariantUnitPriceFallback(t *testing.T) {
	p := Product{ListPriceCents: 10000, DiscountRate: i32(10)}

	v := ProductVariant{}
	if got := v.UnitPriceCents(&p); got != 9000 {
		t.Fatalf("variant without override = %d, want discounted 9000", got)
	}

	v.PriceOverrideCents = i64(8500)
	if got := v.UnitPriceCents(&p); got != 8500 {
		t.Fatalf("variant with override = %d, want 8500", got)
	}
}

func TestCartItemPriceAndStock(t *testing.T) {
	item := CartItem{
		Quantity: 2,
		Product:  Product{Name: "Runner", ListPriceCents: 20000, StockQuantity: 7},
	}
	if got := item.UnitPriceCents(); got != 20000 {
		t.Fatalf("unit price = %d, want 20000", got)
	}
	if got := item.AvailableStock(); got != 7 {
		t.Fatalf("available stock = %d, want 7", got)
	}

	item.ProductVariant = &ProductVariant{StockQuantity: 3, PriceOverrideCents: i64(18000)}
	if got := item.UnitPriceCents(); got != 18000 {
		t.Fatalf("variant unit price = %d, want 18000", got)
	}
	if got := item.AvailableStock(); got != 3 {
		t.Fatalf("variant available stock = %d, want 3", got)
	}
}

func TestOrderTotals(t *testing.T) {
	o := Order{TotalAmountCents: 45000, ShippingCents: 5000}
	if got := o.GrandTotalCents(); got != 50000 {
		t.Fatalf("grand total = %d, want 50000", got)
	}
	if !o.IsGuestOrder() {
		t.Fatal("order without user id should be a guest order")
	}

	item := OrderItem{Quantity: 3, UnitPriceCents: 1500}
	if got := item.LineTotalCents(); got != 4500 {
		t.Fatalf("line total = %d, want 4500", got)
	}
}
