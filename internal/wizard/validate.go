package wizard

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"budgetflow/internal/money"
)

// Result is the outcome of a validation pass. Errors is keyed by field:
// "totalBudget", "plannedAmount", "category_{i}_name", "category_{i}_amount",
// and "category_new_name"/"category_new_amount" for a candidate. Remaining is
// the unallocated headroom, meaningful only when the total parses.
type Result struct {
	IsValid   bool
	Errors    map[string]string
	Remaining float64
}

const maxCategoryNameLen = 50

var (
	amountTwoDecimals  = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	amountZeroDecimals = regexp.MustCompile(`^\d+$`)
)

// Validate computes validity and field errors for a draft and, optionally, a
// candidate category about to be added. It is pure: no side effects, safe to
// call on every keystroke. All violations are collected, not short-circuited.
func Validate(d Draft, candidate *Category) Result {
	errs := make(map[string]string)

	total, totalOK := parseAmount(d.TotalBudget)
	if !totalOK || total <= 0 {
		errs["totalBudget"] = "Total budget must be a positive number"
	}

	allocated := d.allocated()
	remaining := total - allocated
	if totalOK && total > 0 && allocated > total {
		errs["plannedAmount"] = fmt.Sprintf(
			"Allocated %s exceeds the total budget %s; raise the total or reduce category amounts",
			money.Format(allocated, d.Currency), money.Format(total, d.Currency))
	}

	for i, cat := range d.Categories {
		if msg := categoryNameError(cat.Name, d.Categories, cat.ID); msg != "" {
			errs[fmt.Sprintf("category_%d_name", i)] = msg
		}
		if _, ok := validCategoryAmount(cat.Amount, d.Currency); !ok {
			errs[fmt.Sprintf("category_%d_amount", i)] = amountRuleMessage(d.Currency)
		}
	}

	if candidate != nil {
		if msg := categoryNameError(candidate.Name, d.Categories, ""); msg != "" {
			errs["category_new_name"] = msg
		}
		amount, ok := validCategoryAmount(candidate.Amount, d.Currency)
		switch {
		case !ok:
			errs["category_new_amount"] = amountRuleMessage(d.Currency)
		case totalOK && amount > remaining:
			errs["category_new_amount"] = fmt.Sprintf(
				"Amount exceeds the remaining budget (%s)", money.Format(remaining, d.Currency))
		}
	}

	return Result{
		IsValid:   len(errs) == 0,
		Errors:    errs,
		Remaining: remaining,
	}
}

// categoryNameError checks the draft's name rules: non-empty after trimming,
// at least one letter (which also rules out purely numeric names), at most 50
// characters, and unique case-insensitively among the other categories.
// skipID excludes the category's own entry from the uniqueness scan.
func categoryNameError(name string, existing []Category, skipID string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Category name is required"
	}
	if len(trimmed) > maxCategoryNameLen {
		return fmt.Sprintf("Category name must be %d characters or fewer", maxCategoryNameLen)
	}
	if !containsLetter(trimmed) {
		return "Category name must contain at least one letter"
	}

	folded := strings.ToLower(trimmed)
	for _, other := range existing {
		if other.ID == skipID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(other.Name)) == folded {
			return "Category names must be unique"
		}
	}
	return ""
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// amountRuleMessage names the amount shape rule for the currency's precision.
func amountRuleMessage(c money.Currency) string {
	if c.Decimals() == 0 {
		return "Amount must be a positive whole number"
	}
	return "Amount must be a positive number with at most 2 decimal places"
}

// stripSeparators removes the thousands-separator characters tolerated in
// typed amounts.
func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', ' ', '_', '\'':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// parseAmount parses a typed amount into a finite float64. Used for the total
// and for summing allocations; category amounts additionally go through the
// stricter shape check in validCategoryAmount.
func parseAmount(s string) (float64, bool) {
	cleaned := stripSeparators(s)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// validCategoryAmount checks a category amount against the currency's shape
// rule: digits with at most as many fraction digits as the currency carries,
// and a positive value.
func validCategoryAmount(s string, c money.Currency) (float64, bool) {
	cleaned := stripSeparators(s)
	re := amountTwoDecimals
	if c.Decimals() == 0 {
		re = amountZeroDecimals
	}
	if !re.MatchString(cleaned) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
