package wizard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"budgetflow/internal/money"
)

func reviewedDraft() Draft {
	return Draft{
		TotalBudget: "1,000.00",
		Currency:    money.USD,
		Month:       "June",
		Year:        "2025",
		Notes:       "summer budget",
		Categories: []Category{
			{ID: "a", Name: " Rent ", Amount: "600", Order: 0},
			{ID: "b", Name: "Food", Amount: "300.50", Order: 5}, // stale order from earlier edits
		},
	}
}

func TestMonthIndex(t *testing.T) {
	cases := map[string]int{
		"January":   1,
		"june":      6,
		" December": 12,
		"Janvier":   0,
		"":          0,
	}
	for name, want := range cases {
		if got := monthIndex(name); got != want {
			t.Errorf("monthIndex(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(reviewedDraft())

	if payload.TotalBudget != 1000 {
		t.Errorf("expected totalBudget 1000, got %f", payload.TotalBudget)
	}
	if payload.Currency != "USD" {
		t.Errorf("expected currency USD, got %s", payload.Currency)
	}
	if payload.Month != 6 || payload.Year != 2025 {
		t.Errorf("expected period 6/2025, got %d/%d", payload.Month, payload.Year)
	}
	if len(payload.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(payload.Categories))
	}
	for i, cat := range payload.Categories {
		if cat.Order != i {
			t.Errorf("expected order re-derived as %d, got %d", i, cat.Order)
		}
		if cat.ActualAmount != 0 {
			t.Errorf("expected actualAmount 0, got %f", cat.ActualAmount)
		}
	}
	if payload.Categories[0].Name != "Rent" {
		t.Errorf("expected trimmed name Rent, got %q", payload.Categories[0].Name)
	}
	if payload.Categories[1].PlannedAmount != 300.50 {
		t.Errorf("expected plannedAmount 300.50, got %f", payload.Categories[1].PlannedAmount)
	}
}

func TestBuildPayload_UnknownMonth(t *testing.T) {
	d := reviewedDraft()
	d.Month = "Smarch"

	payload := BuildPayload(d)
	if payload.Month != 0 {
		t.Errorf("expected unknown month to map to 0, got %d", payload.Month)
	}
}

func TestHTTPSubmitter_Submit(t *testing.T) {
	t.Run("posts payload to the user-scoped path", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody BudgetPayload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode body: %v", err)
			}
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"success":true,"message":"Budget created successfully"}`))
		}))
		defer srv.Close()

		sub := NewHTTPSubmitter(srv.URL, "test-token", nil)
		if err := sub.Submit(context.Background(), 7, reviewedDraft()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/api/budget/create/7" {
			t.Errorf("expected /api/budget/create/7, got %s", gotPath)
		}
		if gotAuth != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", gotAuth)
		}
		if gotBody.Month != 6 || len(gotBody.Categories) != 2 {
			t.Errorf("unexpected payload: %+v", gotBody)
		}
	})

	t.Run("surfaces the server's message on failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"success":false,"statusCode":409,"message":"Budget for 6/2025 already exists"}`))
		}))
		defer srv.Close()

		sub := NewHTTPSubmitter(srv.URL, "test-token", nil)
		err := sub.Submit(context.Background(), 7, reviewedDraft())
		if err == nil {
			t.Fatal("expected error")
		}
		if err.Error() != "Budget for 6/2025 already exists" {
			t.Errorf("expected server message, got %q", err.Error())
		}
	})

	t.Run("falls back to status code when body is opaque", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		sub := NewHTTPSubmitter(srv.URL, "test-token", nil)
		err := sub.Submit(context.Background(), 7, reviewedDraft())
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("reports network failure", func(t *testing.T) {
		sub := NewHTTPSubmitter("http://127.0.0.1:1", "test-token", nil)
		err := sub.Submit(context.Background(), 7, reviewedDraft())
		if err == nil {
			t.Fatal("expected error")
		}
	})
}
