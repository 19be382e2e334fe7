package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Submitter performs the create request for a finished draft.
type Submitter interface {
	Submit(ctx context.Context, userID uint, d Draft) error
}

// CategoryPayload is one allocation line in the wire format.
type CategoryPayload struct {
	Name          string  `json:"name"`
	PlannedAmount float64 `json:"plannedAmount"`
	ActualAmount  float64 `json:"actualAmount"`
	Order         int     `json:"order"`
}

// BudgetPayload is the create request body.
type BudgetPayload struct {
	TotalBudget float64           `json:"totalBudget"`
	Currency    string            `json:"currency"`
	Month       int               `json:"month"`
	Year        int               `json:"year"`
	Categories  []CategoryPayload `json:"categories"`
	Notes       string            `json:"notes,omitempty"`
}

var monthIndexes = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// monthIndex maps a month name to its 1-based index. An unrecognized name
// maps to 0, which the server rejects; a bad month must fail loudly at the
// trust boundary rather than silently landing in January.
func monthIndex(name string) int {
	return monthIndexes[strings.ToLower(strings.TrimSpace(name))]
}

// BuildPayload converts a draft into the wire format. Order is re-derived
// from the position each category holds at submission time, and actual
// amounts start at zero since spending is tracked after creation.
func BuildPayload(d Draft) BudgetPayload {
	total, _ := parseAmount(d.TotalBudget)
	year, _ := strconv.Atoi(strings.TrimSpace(d.Year))

	payload := BudgetPayload{
		TotalBudget: total,
		Currency:    string(d.Currency),
		Month:       monthIndex(d.Month),
		Year:        year,
		Notes:       d.Notes,
		Categories:  make([]CategoryPayload, 0, len(d.Categories)),
	}
	for i, cat := range d.Categories {
		amount, _ := parseAmount(cat.Amount)
		payload.Categories = append(payload.Categories, CategoryPayload{
			Name:          strings.TrimSpace(cat.Name),
			PlannedAmount: amount,
			ActualAmount:  0,
			Order:         i,
		})
	}
	return payload
}

// HTTPSubmitter submits drafts to the budget API over HTTP.
type HTTPSubmitter struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewHTTPSubmitter creates a submitter for the API at baseURL, authenticating
// with the given bearer token. A nil httpClient falls back to the default.
func NewHTTPSubmitter(baseURL, authToken string, httpClient *http.Client) *HTTPSubmitter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSubmitter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authToken:  authToken,
		httpClient: httpClient,
	}
}

// Submit sends the draft as a create request scoped to the user.
func (s *HTTPSubmitter) Submit(ctx context.Context, userID uint, d Draft) error {
	jsonBody, err := json.Marshal(BuildPayload(d))
	if err != nil {
		return fmt.Errorf("marshaling budget: %w", err)
	}

	url := fmt.Sprintf("%s/api/budget/create/%d", s.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.authToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submitting budget: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		var body struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
			return fmt.Errorf("%s", body.Message)
		}
		return fmt.Errorf("submitting budget: unexpected status %d", resp.StatusCode)
	}
	return nil
}
