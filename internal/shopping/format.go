package shopping

import (
	"fmt"
	"strings"
)

// Summary returns a one-line summary of the list
func (l List) Summary() string {
	return fmt.Sprintf("#%d %s: %d items, %d units", l.ID, l.Name, len(l.Items), l.TotalAmount())
}

// FormatDetailed renders a list with its items, one per line, numbered from 0
// so the index can be passed to set-amount.
func (idx ProviderIndex) FormatDetailed(l List) string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s (#%d) ===\n", l.Name, l.ID)
	fmt.Fprintf(&b, "Updated At:     %s\n", orNone(l.UpdatedAt))
	fmt.Fprintf(&b, "Last Purchase:  %s\n", orNone(idx.DescribeLastPurchase(l)))
	fmt.Fprintf(&b, "Total Items:    %d\n", l.TotalAmount())

	if len(l.Items) == 0 {
		b.WriteString("Items:          (none)\n")
		return b.String()
	}

	b.WriteString("Items:\n")
	width := 0
	for _, item := range l.Items {
		if len(item.Name) > width {
			width = len(item.Name)
		}
	}
	for i, item := range l.Items {
		fmt.Fprintf(&b, "  [%d] %-*s  %d\n", i, width, item.Name, item.Amount)
	}
	return b.String()
}

// FormatCompact renders one line per list.
func (idx ProviderIndex) FormatCompact(lists []List) string {
	var b strings.Builder
	for _, l := range lists {
		b.WriteString(l.Summary())
		if lp := idx.DescribeLastPurchase(l); lp != "" {
			fmt.Fprintf(&b, " (last: %s)", lp)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatProvider renders one provider line, e.g.
// "Amazon (amazon)  x1.25  same-day  You want it, they have it."
func FormatProvider(p Provider) string {
	delivery := "next-day"
	if p.SameDayDelivery {
		delivery = "same-day"
	}
	return fmt.Sprintf("%s (%s)  x%.2f  %s  %s", p.Name, p.ID, p.PriceBias, delivery, p.Description)
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
