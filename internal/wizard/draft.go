// Package wizard implements the client side of the budget entry flow: a
// three step wizard over a mutable draft, a pure validator, and a submitter
// that turns an accepted draft into a create request.
package wizard

import (
	"strconv"
	"sync"
	"time"

	"budgetflow/internal/money"
)

// Category is one allocation line in a draft. Amounts are kept as the raw
// text the user typed; they are only converted to numbers at validation and
// submission time.
type Category struct {
	ID     string
	Name   string
	Amount string
	Order  int
}

// Draft is the in-progress budget being assembled by the wizard. It is owned
// by exactly one Controller for the lifetime of a wizard session.
type Draft struct {
	TotalBudget string
	Currency    money.Currency
	Month       string
	Year        string
	Categories  []Category
	Notes       string
}

// NewDraft returns a draft initialized for the current calendar month.
func NewDraft() Draft {
	now := time.Now()
	return Draft{
		Currency: money.USD,
		Month:    now.Month().String(),
		Year:     strconv.Itoa(now.Year()),
	}
}

// clone returns a copy of the draft with its own category slice, so a
// snapshot handed out of the controller cannot be mutated underneath it.
func (d Draft) clone() Draft {
	out := d
	out.Categories = make([]Category, len(d.Categories))
	copy(out.Categories, d.Categories)
	return out
}

// allocated returns the sum of the draft's parseable category amounts.
func (d Draft) allocated() float64 {
	var sum float64
	for _, cat := range d.Categories {
		if v, ok := parseAmount(cat.Amount); ok {
			sum += v
		}
	}
	return sum
}

var (
	idMu   sync.Mutex
	lastID int64
)

// newCategoryID returns a time-based token unique for the process lifetime.
// IDs are the sole key for category update and removal and are never reused,
// even when two categories are created within the same clock tick.
func newCategoryID() string {
	idMu.Lock()
	defer idMu.Unlock()

	id := time.Now().UnixNano()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return strconv.FormatInt(id, 10)
}
