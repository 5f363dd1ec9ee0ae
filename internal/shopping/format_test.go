package shopping

import (
	"strings"
	"testing"
)

func sampleIndex() ProviderIndex {
	return IndexProviders([]Provider{
		{ID: "walmart", Name: "Walmart", Description: "Pickup or delivery, your choice.", PriceBias: 1.2},
		{ID: "amazon", Name: "Amazon", Description: "You want it, they have it.", PriceBias: 1.25, SameDayDelivery: true},
	})
}

func TestFormatDetailed(t *testing.T) {
	l := List{
		ID:   1,
		Name: "Weekdays",
		Items: []Item{
			{Name: "Apples, Red", Amount: 4},
			{Name: "Bread", Amount: 2},
		},
		LastPurchase: &PurchaseInfo{ProviderID: "walmart", PurchasedAt: "March 21 2023, 3:32 pm"},
		UpdatedAt:    "March 15 2023, 8:21 pm",
	}

	out := sampleIndex().FormatDetailed(l)
	for _, want := range []string{
		"=== Weekdays (#1) ===",
		"Last Purchase:  Walmart at March 21 2023, 3:32 pm",
		"Total Items:    6",
		"  [0] Apples, Red  4",
		"  [1] Bread        2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDetailed() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatDetailed_Empty(t *testing.T) {
	out := sampleIndex().FormatDetailed(List{ID: 4, Name: "Picnic"})
	if !strings.Contains(out, "Items:          (none)") {
		t.Errorf("empty list should say (none):\n%s", out)
	}
	if !strings.Contains(out, "Last Purchase:  (none)") {
		t.Errorf("never purchased list should say (none):\n%s", out)
	}
}

func TestFormatCompact(t *testing.T) {
	lists := []List{
		{ID: 1, Name: "Weekdays", Items: []Item{{Name: "a", Amount: 4}, {Name: "b", Amount: 3}}},
		{ID: 2, Name: "Weekend", LastPurchase: &PurchaseInfo{ProviderID: "amazon", PurchasedAt: "today"}},
	}

	want := "#1 Weekdays: 2 items, 7 units\n#2 Weekend: 0 items, 0 units (last: Amazon at today)\n"
	if got := sampleIndex().FormatCompact(lists); got != want {
		t.Errorf("FormatCompact() =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatProvider(t *testing.T) {
	got := FormatProvider(Provider{ID: "amazon", Name: "Amazon", Description: "You want it, they have it.", PriceBias: 1.25, SameDayDelivery: true})
	want := "Amazon (amazon)  x1.25  same-day  You want it, they have it."
	if got != want {
		t.Errorf("FormatProvider() = %q, want %q", got, want)
	}
}
