package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencyops/clickup-ingress/pkg/model"
	"github.com/agencyops/clickup-ingress/pkg/parser"
)

func TestDropsTransformNewItem(t *testing.T) {
	rows := []parser.Row{{
		colTaskName:    "Fix login bug",
		colStatus:      "to do",
		colDateCreated: "July 2, 2024",
		colDateUpdated: "July 3, 2024",
	}}
	res := NewDrops(nil, testNow).Transform(rows)

	require.Len(t, res.Drops, 1)
	d := res.Drops[0]
	assert.Equal(t, "Fix login bug", d.Title)
	assert.Equal(t, d.Title, d.Content)
	assert.Equal(t, model.DropNew, d.Status)
	assert.False(t, d.Archived)
	assert.Empty(t, d.ArchivedAt)
	assert.Equal(t, "2024-07-02T00:00:00Z", d.CreatedAt)
	assert.Equal(t, "2024-07-03T00:00:00Z", d.UpdatedAt)
}

func TestDropsTransformArchivedItem(t *testing.T) {
	rows := []parser.Row{{
		colTaskName:    "Old cleanup task",
		colStatus:      "Complete",
		colDateCreated: "June 1, 2024",
		colDateUpdated: "June 5, 2024",
	}}
	res := NewDrops(nil, testNow).Transform(rows)

	require.Len(t, res.Drops, 1)
	d := res.Drops[0]
	assert.Equal(t, model.DropArchived, d.Status)
	assert.True(t, d.Archived)
	assert.Equal(t, d.UpdatedAt, d.ArchivedAt)
}

func TestDropsTransformMissingDatesFallBackToRunClock(t *testing.T) {
	rows := []parser.Row{{colTaskName: "No dates here", colStatus: "to do"}}
	res := NewDrops(nil, testNow).Transform(rows)

	require.Len(t, res.Drops, 1)
	d := res.Drops[0]
	assert.Equal(t, "2025-03-10T12:00:00Z", d.CreatedAt)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)
}

func TestDropsTransformSkipsEmptyTitle(t *testing.T) {
	rows := []parser.Row{{colTaskName: "   "}}
	res := NewDrops(nil, testNow).Transform(rows)

	assert.Empty(t, res.Drops)
	assert.Equal(t, 1, res.Stats.RowsSkipped)
}
