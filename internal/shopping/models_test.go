package shopping

import (
	"encoding/json"
	"testing"
)

func sampleList() List {
	return List{
		ID:   1,
		Name: "Weekdays",
		Items: []Item{
			{Name: "Apples, Red", Amount: 4},
			{Name: "Bread, Sliced", Amount: 2},
			{Name: "Butter, Unsalted", Amount: 1},
		},
		LastPurchase: &PurchaseInfo{ProviderID: "walmart", PurchasedAt: "March 21st 2023, 3:32 pm"},
		UpdatedAt:    "March 15th 2023, 8:21 pm",
	}
}

func TestListClone_IsDeep(t *testing.T) {
	orig := sampleList()
	clone := orig.Clone()

	clone.Items[0].Amount = 99
	clone.Items = append(clone.Items, Item{Name: "Milk", Amount: 1})
	clone.LastPurchase.ProviderID = "amazon"

	if orig.Items[0].Amount != 4 {
		t.Errorf("original item amount changed to %d", orig.Items[0].Amount)
	}
	if len(orig.Items) != 3 {
		t.Errorf("original item count changed to %d", len(orig.Items))
	}
	if orig.LastPurchase.ProviderID != "walmart" {
		t.Errorf("original lastPurchase changed to %s", orig.LastPurchase.ProviderID)
	}
}

func TestTotalAmount(t *testing.T) {
	if got := sampleList().TotalAmount(); got != 7 {
		t.Errorf("TotalAmount() = %d, want 7", got)
	}
	if got := (List{}).TotalAmount(); got != 0 {
		t.Errorf("TotalAmount() of empty list = %d, want 0", got)
	}
}

func TestListJSON_FieldNames(t *testing.T) {
	data, err := json.Marshal(sampleList())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	for _, key := range []string{"id", "name", "items", "lastPurchase", "updatedAt"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("JSON missing key %q: %s", key, data)
		}
	}

	noPurchase := sampleList()
	noPurchase.LastPurchase = nil
	data, _ = json.Marshal(noPurchase)
	raw = nil
	_ = json.Unmarshal(data, &raw)
	if _, ok := raw["lastPurchase"]; ok {
		t.Errorf("lastPurchase should be omitted when nil: %s", data)
	}
}

func TestProviderIndex(t *testing.T) {
	idx := IndexProviders([]Provider{
		{ID: "walmart", Name: "Walmart", PriceBias: 1.2},
		{ID: "amazon", Name: "Amazon", PriceBias: 1.25, SameDayDelivery: true},
	})

	if got := idx.DisplayName("walmart"); got != "Walmart" {
		t.Errorf("DisplayName(walmart) = %s, want Walmart", got)
	}
	if got := idx.DisplayName("corner-shop"); got != "corner-shop" {
		t.Errorf("DisplayName(unknown) = %s, want raw id", got)
	}

	want := "Walmart at March 21st 2023, 3:32 pm"
	if got := idx.DescribeLastPurchase(sampleList()); got != want {
		t.Errorf("DescribeLastPurchase() = %q, want %q", got, want)
	}
	if got := idx.DescribeLastPurchase(List{}); got != "" {
		t.Errorf("DescribeLastPurchase() without purchase = %q, want empty", got)
	}
}

func TestCloneLists_Nil(t *testing.T) {
	if CloneLists(nil) != nil {
		t.Error("CloneLists(nil) should be nil")
	}
	if CloneProviders(nil) != nil {
		t.Error("CloneProviders(nil) should be nil")
	}
}
