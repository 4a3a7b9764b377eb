package contracts

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDomain_HoldingCost(t *testing.T) {
	d := &Domain{PurchaseCost: 100, RenewalCost: 20, RenewalCount: 2}

	if got := d.HoldingCost(); got != 140 {
		t.Errorf("HoldingCost() = %v, want 140", got)
	}
}

func TestDomain_HoldingCost_NoRenewals(t *testing.T) {
	// With zero renewals the holding cost is exactly the purchase cost
	d := &Domain{PurchaseCost: 59.99, RenewalCost: 12.99, RenewalCount: 0}

	if got := d.HoldingCost(); got != 59.99 {
		t.Errorf("HoldingCost() = %v, want 59.99", got)
	}
}

func TestDomain_IsSold(t *testing.T) {
	sold := &Domain{Status: StatusSold}
	if !sold.IsSold() {
		t.Error("Expected sold domain to report IsSold()")
	}

	active := &Domain{Status: StatusActive}
	if active.IsSold() {
		t.Error("Expected active domain to not report IsSold()")
	}
}

func TestDomain_HoldingDays(t *testing.T) {
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sale := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	d := &Domain{PurchaseDate: purchase, SaleDate: &sale}
	if got := d.HoldingDays(); got != 30 {
		t.Errorf("HoldingDays() = %v, want 30", got)
	}

	unsold := &Domain{PurchaseDate: purchase}
	if got := unsold.HoldingDays(); got != 0 {
		t.Errorf("HoldingDays() without sale date = %v, want 0", got)
	}
}

func TestDomain_JSON(t *testing.T) {
	price := 300.0
	original := &Domain{
		ID:           "d1",
		Name:         "example.com",
		Status:       StatusSold,
		PurchaseCost: 100,
		RenewalCost:  20,
		RenewalCycle: 1,
		RenewalCount: 2,
		PurchaseDate: time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		SalePrice:    &price,
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded Domain
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if decoded.Name != original.Name {
		t.Errorf("Got name %s, want %s", decoded.Name, original.Name)
	}
	if decoded.SalePrice == nil || *decoded.SalePrice != 300 {
		t.Errorf("Got sale price %v, want 300", decoded.SalePrice)
	}
	if decoded.EstimatedValue != nil {
		t.Error("Expected absent estimated value to stay nil")
	}
}
