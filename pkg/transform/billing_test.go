package transform

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencyops/clickup-ingress/pkg/model"
	"github.com/agencyops/clickup-ingress/pkg/parser"
	"github.com/agencyops/clickup-ingress/pkg/resolver"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func billingRow(overrides map[string]string) parser.Row {
	row := parser.Row{
		colTaskName:     "CaseEngine - July 2024",
		colClient:       "CaseEngine - Cyle P",
		colMonth:        "July",
		colYear:         "2024",
		colTracked:      "$1,500.00",
		colRetainer:     "",
		colProject:      "",
		colMonthlyTotal: "",
		colStatus:       "Completed",
		colDueDate:      "July 31, 2024",
		colDateCreated:  "July 1, 2024",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

func newBillingTransformer() *Billing {
	return NewBilling(resolver.New(nil), nil, testNow)
}

func TestBillingTransformResolvedRow(t *testing.T) {
	res := newBillingTransformer().Transform([]parser.Row{billingRow(nil)})

	require.Len(t, res.Periods, 1)
	p := res.Periods[0]
	assert.Equal(t, "case-engine", p.ClientID)
	assert.Equal(t, "CaseEngine", p.ClientName)
	assert.Equal(t, 7, p.Month)
	assert.Equal(t, 2024, p.Year)
	assert.Equal(t, 1500.0, p.IncomeTracked)
	assert.Equal(t, 1500.0, p.MonthlyTotal)
	assert.Equal(t, model.PaymentCompleted, p.Status)
	assert.Equal(t, model.PeriodArchived, p.PeriodStatus)
	assert.NotEmpty(t, p.ID)
	assert.Empty(t, res.Stubs)
	assert.Equal(t, 1, res.Stats.RecordsOut)
}

func TestBillingTransformPrefersReportedTotal(t *testing.T) {
	row := billingRow(map[string]string{
		colTracked:      "$100.00",
		colRetainer:     "$200.00",
		colMonthlyTotal: "$500.00",
	})
	res := newBillingTransformer().Transform([]parser.Row{row})

	require.Len(t, res.Periods, 1)
	// Reported total wins even when the components disagree, but the
	// disagreement surfaces as a warning for the operator.
	assert.Equal(t, 500.0, res.Periods[0].MonthlyTotal)
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, strings.Join(res.Warnings, "\n"), "disagrees")
}

func TestBillingTransformDerivesTotalWhenUnreported(t *testing.T) {
	row := billingRow(map[string]string{
		colTracked:      "$100.00",
		colRetainer:     "$200.00",
		colProject:      "$50.00",
		colMonthlyTotal: "",
	})
	res := newBillingTransformer().Transform([]parser.Row{row})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, 350.0, res.Periods[0].MonthlyTotal)
	assert.Empty(t, res.Warnings)
}

func TestBillingTransformUnresolvedCreatesStub(t *testing.T) {
	row := billingRow(map[string]string{
		colTaskName: "Mystery Co - July 2024",
		colClient:   "",
	})
	res := newBillingTransformer().Transform([]parser.Row{row})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, "unknown-mystery-co", res.Periods[0].ClientID)
	assert.Equal(t, "Mystery Co", res.Periods[0].ClientName)

	require.Len(t, res.Stubs, 1)
	stub := res.Stubs[0]
	assert.Equal(t, "unknown-mystery-co", stub.ID)
	assert.Equal(t, "hourly", stub.BillingType)
	assert.Equal(t, 100.0, stub.HourlyRate)
	assert.Contains(t, stub.Tags, "needs-review")

	assert.NotEmpty(t, res.Warnings)
}

func TestBillingTransformStubCreatedOncePerClient(t *testing.T) {
	rows := []parser.Row{
		billingRow(map[string]string{colTaskName: "Mystery Co - June 2024", colClient: "", colMonth: "June"}),
		billingRow(map[string]string{colTaskName: "Mystery Co - July 2024", colClient: "", colMonth: "July"}),
	}
	res := newBillingTransformer().Transform(rows)

	assert.Len(t, res.Periods, 2)
	assert.Len(t, res.Stubs, 1)
}

func TestBillingTransformSkipsRowsMissingMonthOrYear(t *testing.T) {
	rows := []parser.Row{
		billingRow(map[string]string{colMonth: ""}),
		billingRow(map[string]string{colYear: "soon"}),
		billingRow(map[string]string{colTaskName: ""}),
	}
	res := newBillingTransformer().Transform(rows)

	assert.Empty(t, res.Periods)
	assert.Equal(t, 3, res.Stats.RowsSkipped)
	assert.Len(t, res.Warnings, 3)
}

func TestBillingTransformUnknownStatusDefaultsToPending(t *testing.T) {
	row := billingRow(map[string]string{colStatus: "Weird Custom Status"})
	res := newBillingTransformer().Transform([]parser.Row{row})

	require.Len(t, res.Periods, 1)
	assert.Equal(t, model.PaymentPending, res.Periods[0].Status)
}
