package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/muurk/shoplist/internal/shopping"
)

// TimestampLayout formats updatedAt and purchasedAt values.
const TimestampLayout = "January 2 2006, 3:04 pm"

var (
	// ErrListNotFound is returned for an id the store does not hold
	ErrListNotFound = errors.New("list not found")
	// ErrUnknownProvider is returned for a purchase through an unknown provider
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrInvalidList is returned for payloads that fail validation
	ErrInvalidList = errors.New("invalid list")
	// ErrDuplicateName is returned when another list already has the name
	ErrDuplicateName = errors.New("list name already in use")
)

// Store holds lists and providers in memory. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	lists     []shopping.List
	providers []shopping.Provider
	nextID    int
	now       func() time.Time
}

// NewStore creates a store holding copies of lists and providers.
func NewStore(lists []shopping.List, providers []shopping.Provider) *Store {
	s := &Store{
		lists:     shopping.CloneLists(lists),
		providers: shopping.CloneProviders(providers),
		now:       time.Now,
	}
	if s.lists == nil {
		s.lists = []shopping.List{}
	}
	if s.providers == nil {
		s.providers = []shopping.Provider{}
	}
	for _, l := range s.lists {
		if l.ID >= s.nextID {
			s.nextID = l.ID + 1
		}
	}
	if s.nextID == 0 {
		s.nextID = 1
	}
	return s
}

// NewSeededStore returns a store with the sample lists and providers.
func NewSeededStore() *Store {
	return NewStore(SampleLists(), SampleProviders())
}

// SampleProviders are the providers served by a seeded store.
func SampleProviders() []shopping.Provider {
	return []shopping.Provider{
		{ID: "amazon", Name: "Amazon", Description: "You want it, they have it.", PriceBias: 1.25, SameDayDelivery: true},
		{ID: "walmart", Name: "Walmart", Description: "Pickup or delivery, your choice.", PriceBias: 1.2},
		{ID: "uber", Name: "Uber", Description: "Anything, anytime.", PriceBias: 1.8, SameDayDelivery: true},
		{ID: "brnenka", Name: "Brněnka", Description: "Ultimate shopping experience.", PriceBias: 1.1},
	}
}

// SampleLists are the lists served by a seeded store.
func SampleLists() []shopping.List {
	const updated = "March 15 2023, 8:21 pm"
	const purchased = "March 21 2023, 3:32 pm"
	apples := shopping.Item{Name: "Apples, Red", Amount: 4}
	bread := shopping.Item{Name: "Bread, Sliced", Amount: 2}

	return []shopping.List{
		{
			ID:           1,
			Name:         "Weekdays",
			Items:        []shopping.Item{apples, bread, {Name: "Butter, Unsalted", Amount: 1}},
			LastPurchase: &shopping.PurchaseInfo{ProviderID: "walmart", PurchasedAt: purchased},
			UpdatedAt:    updated,
		},
		{
			ID:           2,
			Name:         "Weekend",
			Items:        []shopping.Item{apples, bread},
			LastPurchase: &shopping.PurchaseInfo{ProviderID: "amazon", PurchasedAt: purchased},
			UpdatedAt:    updated,
		},
		{
			ID:           3,
			Name:         "Party Night",
			Items:        []shopping.Item{apples, bread, apples, bread},
			LastPurchase: &shopping.PurchaseInfo{ProviderID: "uber", PurchasedAt: purchased},
			UpdatedAt:    updated,
		},
	}
}

// Lists returns a copy of all lists in id order.
func (s *Store) Lists() []shopping.List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shopping.CloneLists(s.lists)
}

// Providers returns a copy of all providers.
func (s *Store) Providers() []shopping.Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return shopping.CloneProviders(s.providers)
}

// List returns the list with id.
func (s *Store) List(id int) (shopping.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return shopping.List{}, fmt.Errorf("%w: %d", ErrListNotFound, id)
	}
	return s.lists[i].Clone(), nil
}

// Update replaces a list's name and items and bumps its updatedAt.
func (s *Store) Update(update shopping.ListUpdate) (shopping.List, error) {
	name := strings.TrimSpace(update.Name)
	if name == "" {
		return shopping.List{}, fmt.Errorf("%w: name is required", ErrInvalidList)
	}
	for i, item := range update.Items {
		if item.Amount < 0 {
			return shopping.List{}, fmt.Errorf("%w: item %d (%s) has negative amount %d",
				ErrInvalidList, i, item.Name, item.Amount)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(update.ID)
	if i < 0 {
		return shopping.List{}, fmt.Errorf("%w: %d", ErrListNotFound, update.ID)
	}
	if other := s.indexOfName(name); other >= 0 && other != i {
		return shopping.List{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	items := make([]shopping.Item, len(update.Items))
	copy(items, update.Items)
	s.lists[i].Name = name
	s.lists[i].Items = items
	s.lists[i].UpdatedAt = s.timestamp()
	return s.lists[i].Clone(), nil
}

// Purchase records a purchase of a list through a provider.
func (s *Store) Purchase(req shopping.PurchaseRequest) (shopping.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(req.ListID)
	if i < 0 {
		return shopping.List{}, fmt.Errorf("%w: %d", ErrListNotFound, req.ListID)
	}
	if !s.hasProvider(req.ProviderID) {
		return shopping.List{}, fmt.Errorf("%w: %q", ErrUnknownProvider, req.ProviderID)
	}

	s.lists[i].LastPurchase = &shopping.PurchaseInfo{
		ProviderID:  req.ProviderID,
		PurchasedAt: s.timestamp(),
	}
	return s.lists[i].Clone(), nil
}

// Create adds an empty list and returns it.
func (s *Store) Create(name string) (shopping.List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shopping.List{}, fmt.Errorf("%w: name is required", ErrInvalidList)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfName(name) >= 0 {
		return shopping.List{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	l := shopping.List{
		ID:        s.nextID,
		Name:      name,
		Items:     []shopping.Item{},
		UpdatedAt: s.timestamp(),
	}
	s.nextID++
	s.lists = append(s.lists, l)
	return l.Clone(), nil
}

// caller holds mu
func (s *Store) indexOf(id int) int {
	for i, l := range s.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// caller holds mu
func (s *Store) indexOfName(name string) int {
	for i, l := range s.lists {
		if l.Name == name {
			return i
		}
	}
	return -1
}

// caller holds mu
func (s *Store) hasProvider(id string) bool {
	for _, p := range s.providers {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) timestamp() string {
	return s.now().Format(TimestampLayout)
}
