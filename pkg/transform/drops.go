// pkg/transform/drops.go
package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agencyops/clickup-ingress/pkg/model"
	"github.com/agencyops/clickup-ingress/pkg/normalize"
	"github.com/agencyops/clickup-ingress/pkg/parser"
)

const colDateUpdated = "Date Updated"

// archivedStatuses are the source states that land a drop in the
// archive rather than the inbox.
var archivedStatuses = map[string]bool{
	"complete":  true,
	"completed": true,
	"closed":    true,
	"done":      true,
	"archived":  true,
}

// DropsResult carries transformed inbox items and their run stats.
type DropsResult struct {
	Drops    []model.Drop
	Stats    SourceStats
	Warnings []string
}

// Drops transforms the task-dump export into inbox items.
type Drops struct {
	logger *zap.Logger
	now    time.Time
}

// NewDrops creates the drops transformer.
func NewDrops(logger *zap.Logger, now time.Time) *Drops {
	return &Drops{logger: logger, now: now}
}

// Transform converts parsed task-dump rows. Title and content are the
// same string at creation; archival timestamps are only set when the
// source status archives the item.
func (t *Drops) Transform(rows []parser.Row) *DropsResult {
	out := &DropsResult{Stats: SourceStats{Source: "tasks"}}
	nowISO := t.now.UTC().Format(time.RFC3339)

	for i, row := range rows {
		out.Stats.RowsRead++
		line := i + 2

		title := strings.TrimSpace(row[colTaskName])
		if title == "" {
			out.Stats.RowsSkipped++
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("tasks row %d: missing task name", line))
			continue
		}

		archived := archivedStatuses[strings.ToLower(strings.TrimSpace(row[colStatus]))]

		createdAt, ok := normalize.Date(row[colDateCreated])
		if !ok {
			createdAt = nowISO
		}
		updatedAt, ok := normalize.Date(row[colDateUpdated])
		if !ok {
			updatedAt = createdAt
		}

		drop := model.Drop{
			ID:        uuid.NewString(),
			Title:     title,
			Content:   title,
			Status:    model.DropNew,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}
		if archived {
			drop.Status = model.DropArchived
			drop.Archived = true
			drop.ArchivedAt = updatedAt
		}

		out.Drops = append(out.Drops, drop)
		out.Stats.RecordsOut++

		if t.logger != nil {
			t.logger.Debug("transformed drop",
				zap.String("title", title),
				zap.Bool("archived", archived))
		}
	}

	return out
}
