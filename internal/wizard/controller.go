package wizard

import (
	"context"
	"strconv"
	"sync"
	"time"

	"budgetflow/internal/money"
)

// Step identifies the wizard's current screen.
type Step int

const (
	StepBasics Step = iota + 1
	StepCategories
	StepReview
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepBasics:
		return "Basics"
	case StepCategories:
		return "Categories"
	case StepReview:
		return "Review"
	}
	return "Unknown"
}

const defaultErrorWindow = 4 * time.Second

// Controller owns one wizard session: the draft, the current step, the
// transient error banner, and the submission lifecycle. The UI is single
// threaded, but banner timers fire on their own goroutine and Submit blocks
// on the network, so all state is guarded by a mutex.
type Controller struct {
	mu          sync.Mutex
	draft       Draft
	step        Step
	submitting  bool
	errors      map[string]string
	errGen      uint64
	errorWindow time.Duration

	userID    uint
	submitter Submitter
	notifier  Notifier
}

// Option configures a Controller.
type Option func(*Controller)

// WithErrorWindow overrides how long a validation error banner stays visible
// before auto-clearing.
func WithErrorWindow(d time.Duration) Option {
	return func(c *Controller) { c.errorWindow = d }
}

// NewController starts a fresh wizard session for the user.
func NewController(userID uint, submitter Submitter, notifier Notifier, opts ...Option) *Controller {
	c := &Controller{
		draft:       NewDraft(),
		step:        StepBasics,
		errorWindow: defaultErrorWindow,
		userID:      userID,
		submitter:   submitter,
		notifier:    notifier,
	}
	if c.notifier == nil {
		c.notifier = NopNotifier{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Step returns the wizard's current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Draft returns a snapshot of the current draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.clone()
}

// Errors returns the currently displayed field errors, nil when none.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errors == nil {
		return nil
	}
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// setErrorsLocked shows errs and schedules their auto-clear. The generation
// counter ties the timer to this particular banner: any newer banner or edit
// bumps the generation, so a stale timer can never clear a newer error.
func (c *Controller) setErrorsLocked(errs map[string]string) {
	c.errors = errs
	c.errGen++
	gen := c.errGen
	time.AfterFunc(c.errorWindow, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.errGen == gen {
			c.errors = nil
		}
	})
}

// clearErrorsLocked hides the banner immediately and invalidates any pending
// auto-clear timer.
func (c *Controller) clearErrorsLocked() {
	c.errors = nil
	c.errGen++
}

// SetTotalBudget updates the draft total. Any displayed errors clear on edit.
func (c *Controller) SetTotalBudget(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.TotalBudget = raw
	c.clearErrorsLocked()
}

// SetCurrency switches the draft currency, re-rendering every entered amount
// in the new currency's precision. The numeric value is preserved except that
// fraction digits the new currency cannot carry are truncated, not rounded.
func (c *Controller) SetCurrency(cur money.Currency) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.TotalBudget = rerenderAmount(c.draft.TotalBudget, cur)
	for i := range c.draft.Categories {
		c.draft.Categories[i].Amount = rerenderAmount(c.draft.Categories[i].Amount, cur)
	}
	c.draft.Currency = cur
	c.clearErrorsLocked()
}

// rerenderAmount rewrites a typed amount in the precision of the target
// currency. Unparseable or empty text is left as the user typed it.
func rerenderAmount(raw string, cur money.Currency) string {
	v, ok := parseAmount(raw)
	if !ok {
		return raw
	}
	return strconv.FormatFloat(money.Truncate(v, cur), 'f', cur.Decimals(), 64)
}

// SetMonth updates the draft month name.
func (c *Controller) SetMonth(month string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Month = month
	c.clearErrorsLocked()
}

// SetYear updates the draft year.
func (c *Controller) SetYear(year string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Year = year
	c.clearErrorsLocked()
}

// SetNotes updates the free-text notes.
func (c *Controller) SetNotes(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Notes = notes
	c.clearErrorsLocked()
}

// NextFromBasics advances to the category step. The gate is the total budget
// alone; category problems are dealt with on their own step.
func (c *Controller) NextFromBasics() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepBasics {
		return false
	}

	result := Validate(c.draft, nil)
	if msg, bad := result.Errors["totalBudget"]; bad {
		c.setErrorsLocked(map[string]string{"totalBudget": msg})
		return false
	}
	c.clearErrorsLocked()
	c.step = StepCategories
	return true
}

// NextFromCategories advances to review. Requires the whole draft valid and
// at least one category.
func (c *Controller) NextFromCategories() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != StepCategories {
		return false
	}

	result := Validate(c.draft, nil)
	if !result.IsValid {
		c.setErrorsLocked(result.Errors)
		return false
	}
	if len(c.draft.Categories) == 0 {
		c.setErrorsLocked(map[string]string{"category_new_name": "Add at least one category before continuing"})
		return false
	}
	c.clearErrorsLocked()
	c.step = StepReview
	return true
}

// AddCategory validates the candidate and appends it to the draft. On
// failure nothing is appended and the field errors are shown.
func (c *Controller) AddCategory(name, amount string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	candidate := Category{Name: name, Amount: amount}
	result := Validate(c.draft, &candidate)

	candidateErrs := make(map[string]string)
	for _, key := range []string{"category_new_name", "category_new_amount"} {
		if msg, bad := result.Errors[key]; bad {
			candidateErrs[key] = msg
		}
	}
	if len(candidateErrs) > 0 {
		c.setErrorsLocked(candidateErrs)
		return false
	}

	candidate.ID = newCategoryID()
	candidate.Order = len(c.draft.Categories)
	c.draft.Categories = append(c.draft.Categories, candidate)
	c.clearErrorsLocked()
	return true
}

// RemoveCategory deletes the category with the given ID. Removal never fails
// validation; unknown IDs are ignored.
func (c *Controller) RemoveCategory(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cat := range c.draft.Categories {
		if cat.ID == id {
			c.draft.Categories = append(c.draft.Categories[:i], c.draft.Categories[i+1:]...)
			break
		}
	}
	c.clearErrorsLocked()
}

// Back moves one step toward the start. Backward navigation has no gate;
// validation runs again on the next forward transition.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case StepCategories:
		c.step = StepBasics
	case StepReview:
		c.step = StepCategories
	}
	c.clearErrorsLocked()
}

// EditBasics jumps from review straight to the first step.
func (c *Controller) EditBasics() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == StepReview {
		c.step = StepBasics
		c.clearErrorsLocked()
	}
}

// Reset discards the draft and returns to the first step.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.draft = NewDraft()
	c.step = StepBasics
	c.submitting = false
	c.clearErrorsLocked()
}

// Submit sends the draft to the server. A second call while a submission is
// outstanding is a no-op. On success the wizard resets to a fresh draft; on
// failure the draft and step are kept so the user can correct and retry.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if c.submitting || c.step != StepReview || len(c.draft.Categories) == 0 {
		c.mu.Unlock()
		return false
	}
	c.submitting = true
	draft := c.draft.clone()
	userID := c.userID
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, userID, draft)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.notifier.Error(err.Error())
		c.setErrorsLocked(map[string]string{"submit": err.Error()})
		return false
	}
	c.notifier.Success("Budget created successfully")
	c.resetLocked()
	return true
}

// Submitting reports whether a submission is outstanding.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}
