// pkg/model/records.go
package model

import (
	"fmt"
	"strings"
)

// BillingPeriod is one client's revenue record for one calendar month.
// ID is an opaque reference for the dashboard UI; identity for
// deduplication is (clientId, month, year) only.
type BillingPeriod struct {
	ID             string        `json:"id"`
	ClientID       string        `json:"clientId"`
	ClientName     string        `json:"clientName"`
	Month          int           `json:"month"`
	Year           int           `json:"year"`
	IncomeTracked  float64       `json:"incomeTracked"`
	IncomeRetainer float64       `json:"incomeRetainer"`
	IncomeProject  float64       `json:"incomeProject"`
	MonthlyTotal   float64       `json:"monthlyTotal"`
	Status         PaymentStatus `json:"status"`
	PeriodStatus   PeriodStatus  `json:"periodStatus"`
	DueDate        string        `json:"dueDate,omitempty"`
	CreatedAt      string        `json:"createdAt,omitempty"`
}

// Key returns the deduplication identity for merge.
func (p BillingPeriod) Key() string {
	return fmt.Sprintf("%s|%d|%d", p.ClientID, p.Month, p.Year)
}

// A2PRegistration is one business's phone-number compliance
// registration. ApprovalDays is a pointer because "not yet approved" is
// different from "approved in zero days".
type A2PRegistration struct {
	ID               string    `json:"id"`
	BusinessName     string    `json:"businessName"`
	Status           A2PStatus `json:"status"`
	RegistrationType string    `json:"registrationType"`
	BusinessType     string    `json:"businessType"`
	ClientID         string    `json:"clientId"`
	CreatedAt        string    `json:"createdAt,omitempty"`
	ApprovedAt       string    `json:"approvedAt,omitempty"`
	ApprovalDays     *float64  `json:"approvalDays"`
	Notes            string    `json:"notes,omitempty"`
}

// Key deduplicates registrations on normalized business name.
func (r A2PRegistration) Key() string {
	return strings.ToLower(strings.TrimSpace(r.BusinessName))
}

// Drop is a lightweight inbox item. Title and Content are identical at
// creation; the dashboard may edit Content later.
type Drop struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Status     DropStatus `json:"status"`
	Archived   bool       `json:"archived"`
	ArchivedAt string     `json:"archivedAt,omitempty"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}

// Key deduplicates drops on trimmed, case-folded title text.
func (d Drop) Key() string {
	return strings.ToLower(strings.TrimSpace(d.Title))
}

// Client is a dashboard client record. The migration only ever creates
// review-flagged stubs; real client management is the dashboard's job.
type Client struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BillingType string   `json:"billingType"`
	HourlyRate  float64  `json:"hourlyRate"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
}

// Key deduplicates clients on their deterministic id.
func (c Client) Key() string {
	return c.ID
}

// NewStubClient builds the placeholder created when entity resolution
// fails. Defaults (hourly, $100/hr) are wrong on purpose: the
// needs-review tag forces a human to correct them.
func NewStubClient(id, name, createdAt string) Client {
	return Client{
		ID:          id,
		Name:        name,
		BillingType: "hourly",
		HourlyRate:  100,
		Tags:        []string{"needs-review"},
		CreatedAt:   createdAt,
	}
}
