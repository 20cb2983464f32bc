// pkg/transform/billing.go
package transform

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agencyops/clickup-ingress/pkg/model"
	"github.com/agencyops/clickup-ingress/pkg/normalize"
	"github.com/agencyops/clickup-ingress/pkg/parser"
	"github.com/agencyops/clickup-ingress/pkg/resolver"
)

// Column names are fixed by the legacy income export.
const (
	colTaskName     = "Task Name"
	colClient       = "Client (drop down)"
	colMonth        = "Month (drop down)"
	colYear         = "Year (drop down)"
	colTracked      = "$ (Tracked) (formula)"
	colRetainer     = "$ Retainer (number)"
	colProject      = "$ Project (number)"
	colMonthlyTotal = "Monthly Total (formula)"
	colStatus       = "Status"
	colDueDate      = "Due Date"
	colDateCreated  = "Date Created"
)

// paymentStatuses translates the export's status vocabulary. Unknown
// values fall back to pending rather than failing the row.
var paymentStatuses = map[string]model.PaymentStatus{
	"completed":        model.PaymentCompleted,
	"complete":         model.PaymentCompleted,
	"paid":             model.PaymentPaid,
	"payment received": model.PaymentPaid,
	"sent for payment": model.PaymentInvoiceSent,
	"invoice sent":     model.PaymentInvoiceSent,
	"to do":            model.PaymentPending,
	"in progress":      model.PaymentPending,
	"open":             model.PaymentPending,
}

// BillingResult carries the transformed billing periods plus any stub
// clients created for unresolved names.
type BillingResult struct {
	Periods  []model.BillingPeriod
	Stubs    []model.Client
	Stats    SourceStats
	Warnings []string
}

// Billing transforms income export rows into billing period records.
type Billing struct {
	resolver *resolver.Resolver
	logger   *zap.Logger
	now      time.Time
}

// NewBilling creates the billing transformer. now is injected so a run
// derives every period status from a single instant.
func NewBilling(res *resolver.Resolver, logger *zap.Logger, now time.Time) *Billing {
	return &Billing{resolver: res, logger: logger, now: now}
}

// Transform converts parsed income rows. Rows missing a task name or a
// month/year pair are skipped with a warning; resolver misses fall back
// to a deterministic unknown-<slug> client plus a review stub.
func (t *Billing) Transform(rows []parser.Row) *BillingResult {
	out := &BillingResult{Stats: SourceStats{Source: "income"}}
	stubSeen := make(map[string]bool)
	nowISO := t.now.UTC().Format(time.RFC3339)

	for i, row := range rows {
		out.Stats.RowsRead++
		line := i + 2 // physical line, accounting for the header row

		title := strings.TrimSpace(row[colTaskName])
		if title == "" {
			out.skip("income row %d: missing task name", line)
			continue
		}

		month, okM := monthNumber(row[colMonth])
		year, okY := yearNumber(row[colYear])
		if !okM || !okY {
			out.skip("income row %d (%q): missing or invalid month/year", line, title)
			continue
		}

		displayName := resolver.CleanTitle(title)
		if displayName == "" {
			displayName = title
		}

		dropdown := row[colClient]
		res := t.resolver.Resolve(dropdown, title)

		clientID := res.ClientID
		if !res.Matched {
			slug := resolver.Slug(displayName)
			if slug == "" {
				slug = "client"
			}
			clientID = "unknown-" + slug

			out.warn("income row %d: unresolved client (title=%q, dropdown=%q) -> %s",
				line, title, dropdown, clientID)

			if !stubSeen[clientID] {
				stubSeen[clientID] = true
				out.Stubs = append(out.Stubs, model.NewStubClient(clientID, displayName, nowISO))
				out.warn("created stub client %s (%q) for manual review", clientID, displayName)
			}
		}

		tracked := normalize.Currency(row[colTracked])
		retainer := normalize.Currency(row[colRetainer])
		project := normalize.Currency(row[colProject])
		reported := normalize.Currency(row[colMonthlyTotal])

		// Prefer the export's own total when present and nonzero,
		// else recompute from the components.
		derived := tracked + retainer + project
		total := reported
		if total == 0 {
			total = derived
		} else if derived != 0 && math.Abs(reported-derived) > 0.01 {
			out.warn("income row %d (%q): reported total %.2f disagrees with component sum %.2f; keeping reported",
				line, title, reported, derived)
		}

		status, ok := paymentStatuses[strings.ToLower(strings.TrimSpace(row[colStatus]))]
		if !ok {
			status = model.PaymentPending
		}

		dueDate, _ := normalize.Date(row[colDueDate])
		createdAt, _ := normalize.Date(row[colDateCreated])

		out.Periods = append(out.Periods, model.BillingPeriod{
			ID:             uuid.NewString(),
			ClientID:       clientID,
			ClientName:     displayName,
			Month:          month,
			Year:           year,
			IncomeTracked:  tracked,
			IncomeRetainer: retainer,
			IncomeProject:  project,
			MonthlyTotal:   total,
			Status:         status,
			PeriodStatus:   model.DerivePeriodStatus(month, year, status, t.now),
			DueDate:        dueDate,
			CreatedAt:      createdAt,
		})
		out.Stats.RecordsOut++

		if t.logger != nil {
			t.logger.Debug("transformed billing period",
				zap.String("clientId", clientID),
				zap.Int("month", month),
				zap.Int("year", year),
				zap.Float64("monthlyTotal", total))
		}
	}

	return out
}

func (r *BillingResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *BillingResult) skip(format string, args ...any) {
	r.Stats.RowsSkipped++
	r.warn(format, args...)
}
