// Package purchase implements the three-step purchase wizard:
// overview, provider selection and review.
package purchase

import (
	"errors"
	"fmt"
	"math"

	"github.com/muurk/shoplist/internal/shopping"
)

// ErrNoProvider blocks confirmation until a provider is chosen.
var ErrNoProvider = errors.New("no provider selected")

// ErrUnknownProvider is returned when selecting a provider that was not offered.
var ErrUnknownProvider = errors.New("unknown provider")

// Step is a wizard step.
type Step int

const (
	StepOverview Step = iota
	StepProvider
	StepReview
)

// StepCount is the number of wizard steps.
const StepCount = 3

// Review labels
const (
	NoProviderLabel   = "No provider selected"
	DeliveryToday     = "today"
	DeliveryTomorrow  = "tomorrow"
	ConfirmButtonText = "Purchase"
)

// String returns the step title
func (s Step) String() string {
	switch s {
	case StepOverview:
		return "Overview"
	case StepProvider:
		return "Choose Provider"
	case StepReview:
		return "Review"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Summary holds the computed review fields.
type Summary struct {
	TotalItems     int
	EstimatedPrice int  // valid only when HasProvider
	HasProvider    bool
	Delivery       string
	ProviderName   string
}

// PriceLabel renders the estimated price, e.g. "9 USD", or the
// no-provider message.
func (s Summary) PriceLabel() string {
	if !s.HasProvider {
		return NoProviderLabel
	}
	return fmt.Sprintf("%d USD", s.EstimatedPrice)
}

// Wizard is the state of one purchase flow. Provider choice is scoped to the
// wizard, not to the list.
type Wizard struct {
	list      shopping.List
	providers []shopping.Provider
	step      Step
	selected  int // index into providers, -1 when none
}

// New starts a wizard for list with the given provider choices.
func New(list shopping.List, providers []shopping.Provider) *Wizard {
	return &Wizard{
		list:      list.Clone(),
		providers: shopping.CloneProviders(providers),
		step:      StepOverview,
		selected:  -1,
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// List returns the list being purchased.
func (w *Wizard) List() shopping.List { return w.list.Clone() }

// Providers returns the provider choices.
func (w *Wizard) Providers() []shopping.Provider {
	return shopping.CloneProviders(w.providers)
}

// Next advances one step. It is a no-op on the last step.
func (w *Wizard) Next() {
	if w.step < StepReview {
		w.step++
	}
}

// Back returns one step. It is a no-op on the first step.
func (w *Wizard) Back() {
	if w.step > StepOverview {
		w.step--
	}
}

// IsLast reports whether the wizard is on the review step.
func (w *Wizard) IsLast() bool { return w.step == StepReview }

// Select chooses the provider at index.
func (w *Wizard) Select(index int) error {
	if index < 0 || index >= len(w.providers) {
		return fmt.Errorf("%w: index %d", ErrUnknownProvider, index)
	}
	w.selected = index
	return nil
}

// SelectByID chooses the provider with the given id.
func (w *Wizard) SelectByID(id string) error {
	for i, p := range w.providers {
		if p.ID == id {
			w.selected = i
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownProvider, id)
}

// Selected returns the chosen provider, if any.
func (w *Wizard) Selected() (shopping.Provider, bool) {
	if w.selected < 0 {
		return shopping.Provider{}, false
	}
	return w.providers[w.selected], true
}

// SelectedIndex returns the chosen provider index or -1.
func (w *Wizard) SelectedIndex() int { return w.selected }

// Review computes the review step fields.
func (w *Wizard) Review() Summary {
	return Summarize(w.list.Items, w.selectedPtr())
}

func (w *Wizard) selectedPtr() *shopping.Provider {
	if p, ok := w.Selected(); ok {
		return &p
	}
	return nil
}

// Summarize computes review fields for items and an optional provider.
// An empty item set totals zero.
func Summarize(items []shopping.Item, provider *shopping.Provider) Summary {
	s := Summary{
		TotalItems: shopping.TotalAmount(items),
		Delivery:   DeliveryTomorrow,
	}
	if provider == nil {
		return s
	}

	s.HasProvider = true
	s.ProviderName = provider.Name
	s.EstimatedPrice = EstimatePrice(s.TotalItems, provider.PriceBias)
	if provider.SameDayDelivery {
		s.Delivery = DeliveryToday
	}
	return s
}

// EstimatePrice returns round(total * priceBias), halves rounding away from zero.
func EstimatePrice(total int, priceBias float64) int {
	return int(math.Round(float64(total) * priceBias))
}

// Confirm returns the purchase request for the current selection. It fails
// with ErrNoProvider when no provider was chosen.
func (w *Wizard) Confirm() (shopping.PurchaseRequest, error) {
	p, ok := w.Selected()
	if !ok {
		return shopping.PurchaseRequest{}, ErrNoProvider
	}
	return shopping.PurchaseRequest{ListID: w.list.ID, ProviderID: p.ID}, nil
}
