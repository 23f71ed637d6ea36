package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"unishift/internal/domain"
)

const (
	dateLayout     = "02/01/2006"
	emptyPageLabel = "No donations found on this page."
)

var totalPrinter = message.NewPrinter(language.BritishEnglish)

// Line formats one listing entry: "<index>. £<amount> - <dd/mm/yyyy>".
func (w *Workflow) Line(index int, d domain.Donation) string {
	return fmt.Sprintf("%d. £%s - %s", index, d.Amount.StringFixed(2), d.CreatedAt.In(w.location).Format(dateLayout))
}

// Listing renders the page body with absolute indices.
func (w *Workflow) Listing(p *Page) string {
	if len(p.Items) == 0 {
		return emptyPageLabel
	}
	lines := make([]string, 0, len(p.Items))
	for i, d := range p.Items {
		lines = append(lines, w.Line(p.Offset+i+1, d))
	}
	return strings.Join(lines, "\n")
}

// Footer renders "Page p of n | Total: £x" with the grand total grouped the
// en-GB way.
func Footer(p *Page) string {
	pages := p.TotalPages
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("Page %d of %d | Total: £%s", p.Number, pages, FormatTotal(p.Total))
}

// FormatTotal renders an amount with thousands separators and two decimals.
// Only the integer part goes through the printer so large totals stay exact.
func FormatTotal(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	sign := ""
	if strings.HasPrefix(whole, "-") {
		sign, whole = "-", whole[1:]
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return fixed
	}
	return sign + totalPrinter.Sprintf("%d", n) + "." + frac
}
