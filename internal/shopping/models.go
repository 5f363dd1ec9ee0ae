package shopping

import "fmt"

// Item is a single line on a shopping list.
type Item struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

// PurchaseInfo records the last completed purchase of a list.
type PurchaseInfo struct {
	ProviderID  string `json:"providerId"`
	PurchasedAt string `json:"purchasedAt"`
}

// List is a named, ordered collection of items.
type List struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Items        []Item        `json:"items"`
	LastPurchase *PurchaseInfo `json:"lastPurchase,omitempty"`
	UpdatedAt    string        `json:"updatedAt"`
}

// Provider is a vendor that can fulfil a purchase.
type Provider struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	PriceBias       float64 `json:"priceBias"`
	SameDayDelivery bool    `json:"sameDayDelivery"`
}

// ListUpdate is the body of POST /list/update.
type ListUpdate struct {
	ID    int    `json:"id"`
	Items []Item `json:"items"`
	Name  string `json:"name"`
}

// PurchaseRequest is the body of POST /purchase.
type PurchaseRequest struct {
	ListID     int    `json:"listId"`
	ProviderID string `json:"providerId"`
}

// CreateListRequest is the body of POST /list/create.
type CreateListRequest struct {
	Name string `json:"name"`
}

// Clone returns a deep copy of the list.
func (l List) Clone() List {
	out := l
	if l.Items != nil {
		out.Items = make([]Item, len(l.Items))
		copy(out.Items, l.Items)
	}
	if l.LastPurchase != nil {
		lp := *l.LastPurchase
		out.LastPurchase = &lp
	}
	return out
}

// TotalAmount sums the amounts of all items. An empty list totals zero.
func (l List) TotalAmount() int {
	return TotalAmount(l.Items)
}

// TotalAmount sums the amounts of items.
func TotalAmount(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// String returns a short description used in logs and CLI output.
func (l List) String() string {
	return fmt.Sprintf("%s (#%d, %d items)", l.Name, l.ID, len(l.Items))
}

// CloneLists deep-copies a slice of lists.
func CloneLists(lists []List) []List {
	if lists == nil {
		return nil
	}
	out := make([]List, len(lists))
	for i, l := range lists {
		out[i] = l.Clone()
	}
	return out
}

// CloneProviders copies a slice of providers.
func CloneProviders(providers []Provider) []Provider {
	if providers == nil {
		return nil
	}
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// ProviderIndex resolves provider ids to providers.
type ProviderIndex map[string]Provider

// IndexProviders builds a ProviderIndex keyed by provider id.
func IndexProviders(providers []Provider) ProviderIndex {
	idx := make(ProviderIndex, len(providers))
	for _, p := range providers {
		idx[p.ID] = p
	}
	return idx
}

// DisplayName returns the provider name for id, or the id itself when the
// provider is unknown.
func (idx ProviderIndex) DisplayName(id string) string {
	if p, ok := idx[id]; ok {
		return p.Name
	}
	return id
}

// DescribeLastPurchase formats the "Last Purchase" column, e.g.
// "Walmart at March 21st 2023, 3:32 pm". Returns "" when the list has never
// been purchased.
func (idx ProviderIndex) DescribeLastPurchase(l List) string {
	if l.LastPurchase == nil {
		return ""
	}
	return fmt.Sprintf("%s at %s", idx.DisplayName(l.LastPurchase.ProviderID), l.LastPurchase.PurchasedAt)
}
