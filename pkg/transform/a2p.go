// pkg/transform/a2p.go
package transform

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agencyops/clickup-ingress/pkg/model"
	"github.com/agencyops/clickup-ingress/pkg/normalize"
	"github.com/agencyops/clickup-ingress/pkg/parser"
)

const (
	colBusinessName = "Business Name"
	colRegType      = "Registration Type (drop down)"
	colBizType      = "Business Type (drop down)"
	colApprovalDate = "Approval Date"
	colApprovalTime = "Approval Time (formula)"
	colNotes        = "Notes"

	// Notes fields in the export can hold pasted email threads.
	maxNoteLength = 500
)

// a2pStatuses translates export status strings into the fixed
// registration pipeline. Unknown values start over at to_submit.
var a2pStatuses = map[string]model.A2PStatus{
	"to submit":            model.A2PToSubmit,
	"to-submit":            model.A2PToSubmit,
	"submitted":            model.A2PSubmitted,
	"rejected":             model.A2PRejected,
	"rejected-resubmitted": model.A2PRejectedResubmitted,
	"rejected resubmitted": model.A2PRejectedResubmitted,
	"brand approved":       model.A2PBrandApproved,
	"fully approved":       model.A2PFullyApproved,
}

// A2PResult carries transformed registrations and their run stats.
type A2PResult struct {
	Registrations []model.A2PRegistration
	Stats         SourceStats
	Warnings      []string
}

// A2P transforms the compliance-registration export.
type A2P struct {
	logger *zap.Logger
}

// NewA2P creates the A2P transformer.
func NewA2P(logger *zap.Logger) *A2P {
	return &A2P{logger: logger}
}

// Transform converts parsed A2P rows. Client linkage is deliberately
// left blank: matching registrations to clients is a manual follow-up.
func (t *A2P) Transform(rows []parser.Row) *A2PResult {
	out := &A2PResult{Stats: SourceStats{Source: "a2p"}}

	for i, row := range rows {
		out.Stats.RowsRead++
		line := i + 2

		name := strings.TrimSpace(row[colBusinessName])
		if name == "" {
			out.Stats.RowsSkipped++
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("a2p row %d: missing business name", line))
			continue
		}

		status, ok := a2pStatuses[strings.ToLower(strings.TrimSpace(row[colStatus]))]
		if !ok {
			status = model.A2PToSubmit
		}

		var approvalDays *float64
		if days, ok := normalize.Number(row[colApprovalTime]); ok {
			approvalDays = &days
		}

		createdAt, _ := normalize.Date(row[colDateCreated])
		approvedAt, _ := normalize.Date(row[colApprovalDate])

		out.Registrations = append(out.Registrations, model.A2PRegistration{
			ID:               uuid.NewString(),
			BusinessName:     name,
			Status:           status,
			RegistrationType: strings.TrimSpace(row[colRegType]),
			BusinessType:     strings.TrimSpace(row[colBizType]),
			ClientID:         "",
			CreatedAt:        createdAt,
			ApprovedAt:       approvedAt,
			ApprovalDays:     approvalDays,
			Notes:            truncateRunes(strings.TrimSpace(row[colNotes]), maxNoteLength),
		})
		out.Stats.RecordsOut++

		if t.logger != nil {
			t.logger.Debug("transformed a2p registration",
				zap.String("businessName", name),
				zap.String("status", string(status)))
		}
	}

	return out
}
