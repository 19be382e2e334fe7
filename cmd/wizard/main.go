// Command wizard is a terminal front end for the budget entry flow. It walks
// the three wizard steps against a running API server, useful for exercising
// the flow end to end without the web client.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"budgetflow/internal/money"
	"budgetflow/internal/wizard"
)

type ui struct {
	ctrl *wizard.Controller
	in   *bufio.Reader
	out  io.Writer
}

// terminalNotifier prints toasts to the terminal.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Success(msg string) { fmt.Fprintf(n.out, "✔ %s\n", msg) }
func (n terminalNotifier) Error(msg string)   { fmt.Fprintf(n.out, "✘ %s\n", msg) }

func main() {
	var (
		apiURL = flag.String("api", "http://localhost:8080", "base URL of the budget API")
		token  = flag.String("token", "", "bearer token for the authenticated user")
		userID = flag.Uint("user", 0, "authenticated user ID")
	)
	flag.Parse()

	if *token == "" || *userID == 0 {
		fmt.Fprintln(os.Stderr, "usage: wizard -api URL -token TOKEN -user ID")
		os.Exit(2)
	}

	out := os.Stdout
	submitter := wizard.NewHTTPSubmitter(*apiURL, *token, nil)
	ctrl := wizard.NewController(*userID, submitter, terminalNotifier{out: out})

	u := &ui{ctrl: ctrl, in: bufio.NewReader(os.Stdin), out: out}
	u.run()
}

func (u *ui) run() {
	for {
		switch u.ctrl.Step() {
		case wizard.StepBasics:
			if !u.stepBasics() {
				return
			}
		case wizard.StepCategories:
			u.stepCategories()
		case wizard.StepReview:
			if u.stepReview() {
				return
			}
		}
	}
}

func (u *ui) stepBasics() bool {
	d := u.ctrl.Draft()
	fmt.Fprintf(u.out, "\n=== Budget basics (%s %s) ===\n", d.Month, d.Year)
	fmt.Fprintf(u.out, "Currency: %s  Total: %s\n", d.Currency, orNone(d.TotalBudget))
	fmt.Fprintln(u.out, "1) Set total budget")
	fmt.Fprintln(u.out, "2) Set currency")
	fmt.Fprintln(u.out, "3) Set month")
	fmt.Fprintln(u.out, "4) Set year")
	fmt.Fprintln(u.out, "5) Continue to categories")
	fmt.Fprintln(u.out, "0) Quit")
	fmt.Fprint(u.out, "> ")

	switch u.readLine() {
	case "1":
		fmt.Fprint(u.out, "Total budget: ")
		u.ctrl.SetTotalBudget(u.readLine())
	case "2":
		fmt.Fprintf(u.out, "Currency (%s): ", currencyList())
		if cur, err := money.Parse(u.readLine()); err == nil {
			u.ctrl.SetCurrency(cur)
		} else {
			fmt.Fprintln(u.out, "Unsupported currency")
		}
	case "3":
		fmt.Fprint(u.out, "Month (e.g. June): ")
		u.ctrl.SetMonth(u.readLine())
	case "4":
		fmt.Fprint(u.out, "Year: ")
		u.ctrl.SetYear(u.readLine())
	case "5":
		if !u.ctrl.NextFromBasics() {
			u.showErrors()
		}
	case "0":
		return false
	}
	return true
}

func (u *ui) stepCategories() {
	d := u.ctrl.Draft()
	result := wizard.Validate(d, nil)

	fmt.Fprintln(u.out, "\n=== Categories ===")
	for i, cat := range d.Categories {
		fmt.Fprintf(u.out, "%d) %s: %s\n", i+1, cat.Name, cat.Amount)
	}
	fmt.Fprintf(u.out, "Remaining: %s\n", money.Format(result.Remaining, d.Currency))
	fmt.Fprintln(u.out, "a) Add category")
	fmt.Fprintln(u.out, "r) Remove category")
	fmt.Fprintln(u.out, "n) Continue to review")
	fmt.Fprintln(u.out, "b) Back")
	fmt.Fprint(u.out, "> ")

	switch u.readLine() {
	case "a":
		fmt.Fprint(u.out, "Name: ")
		name := u.readLine()
		fmt.Fprint(u.out, "Amount: ")
		amount := u.readLine()
		if !u.ctrl.AddCategory(name, amount) {
			u.showErrors()
		}
	case "r":
		fmt.Fprint(u.out, "Number to remove: ")
		var idx int
		if _, err := fmt.Sscanf(u.readLine(), "%d", &idx); err == nil && idx >= 1 && idx <= len(d.Categories) {
			u.ctrl.RemoveCategory(d.Categories[idx-1].ID)
		}
	case "n":
		if !u.ctrl.NextFromCategories() {
			u.showErrors()
		}
	case "b":
		u.ctrl.Back()
	}
}

func (u *ui) stepReview() bool {
	d := u.ctrl.Draft()
	total := wizard.BuildPayload(d).TotalBudget

	fmt.Fprintln(u.out, "\n=== Review ===")
	fmt.Fprintf(u.out, "%s %s, total %s\n", d.Month, d.Year, money.Format(total, d.Currency))
	for _, cat := range d.Categories {
		fmt.Fprintf(u.out, "  %s: %s\n", cat.Name, cat.Amount)
	}
	fmt.Fprintln(u.out, "s) Submit")
	fmt.Fprintln(u.out, "b) Back")
	fmt.Fprintln(u.out, "x) Discard draft")
	fmt.Fprint(u.out, "> ")

	switch u.readLine() {
	case "s":
		if u.ctrl.Submit(context.Background()) {
			return true
		}
		u.showErrors()
	case "b":
		u.ctrl.Back()
	case "x":
		u.ctrl.Reset()
	}
	return false
}

func (u *ui) showErrors() {
	errs := u.ctrl.Errors()
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(u.out, "  ! %s\n", errs[k])
	}
}

func (u *ui) readLine() string {
	line, _ := u.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func orNone(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func currencyList() string {
	codes := make([]string, 0, len(money.All()))
	for _, c := range money.All() {
		codes = append(codes, string(c))
	}
	return strings.Join(codes, "/")
}
