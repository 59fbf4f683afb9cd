package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationOrdering(t *testing.T) {
	names := make([]string, 0, len(Migrations))
	for _, m := range Migrations {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{
		"base_schema",
		"enhanced_workflow",
		"time_column_split",
		"collaborator_redesign",
	}, names)
}

func TestDecideAction(t *testing.T) {
	tests := []struct {
		name                             string
		recorded, destructive, preStateOK bool
		want                             migrationAction
	}{
		{"additive first run", false, false, true, actionRun},
		{"additive re-run", true, false, true, actionSkip},
		{"destructive first run", false, true, true, actionRun},
		{"destructive recorded", true, true, true, actionSkip},
		{"destructive recorded, state gone", true, true, false, actionSkip},
		{"destructive unrecorded, state gone", false, true, false, actionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decideAction(tt.recorded, tt.destructive, tt.preStateOK))
		})
	}
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements("CREATE TABLE a (\n\tid SERIAL\n);\n\nCREATE INDEX b ON a(id);\n")
	require.Len(t, stmts, 2)
	assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE a"))
	assert.Equal(t, "CREATE INDEX b ON a(id)", stmts[1])
}

func TestBaseSchemaStatements(t *testing.T) {
	stmts := splitStatements(baseSchema)
	require.NotEmpty(t, stmts)

	joined := strings.Join(stmts, "\n")
	for _, table := range []string{
		"users", "tasks", "calendar_events", "task_sessions",
		"user_google_accounts", "user_github_accounts",
	} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}

	// Ownership cascades and the soft task association.
	assert.Contains(t, joined, "user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE")
	assert.Contains(t, joined, "task_id INTEGER REFERENCES tasks(task_id) ON DELETE SET NULL")
}

func TestEnhancedWorkflowStatements(t *testing.T) {
	joined := strings.Join(splitStatements(enhancedWorkflow), "\n")

	assert.Contains(t, joined, "UNIQUE(event_id, user_id)")
	assert.Contains(t, joined, "UNIQUE(event_id)")
	assert.Contains(t, joined, "CREATE OR REPLACE VIEW upcoming_meetings")
	assert.Contains(t, joined, "CREATE OR REPLACE VIEW user_tasks")
	assert.Contains(t, joined, "event_type IN ('task', 'meeting', 'event')")
}

func TestTimeColumnSplitRecreatesViews(t *testing.T) {
	var dropsBeforeAlter, viewRecreated bool
	for i, stmt := range timeColumnSplit {
		if strings.HasPrefix(stmt, "DROP VIEW IF EXISTS upcoming_meetings") {
			dropsBeforeAlter = i == 0
		}
		if strings.Contains(stmt, "CREATE OR REPLACE VIEW upcoming_meetings") {
			viewRecreated = true
			// Date-aware future filter with fallback for unscheduled rows.
			assert.Contains(t, stmt, "(ce.scheduled_date + ce.start_time) > NOW()")
			assert.Contains(t, stmt, "ce.start_time > NOW()::time")
			// Once the date is split out of start_time, readers need it
			// from the view to order meetings by day.
			assert.Contains(t, stmt, "ce.scheduled_date,")
		}
	}
	assert.True(t, dropsBeforeAlter, "view must be dropped before the column type change")
	assert.True(t, viewRecreated)

	// Backfill must precede the view recreation.
	backfill, view := -1, -1
	for i, stmt := range timeColumnSplit {
		if strings.HasPrefix(stmt, "UPDATE calendar_events SET scheduled_date") {
			backfill = i
		}
		if strings.Contains(stmt, "CREATE OR REPLACE VIEW upcoming_meetings") {
			view = i
		}
	}
	require.GreaterOrEqual(t, backfill, 0)
	assert.Less(t, backfill, view)
}

func TestCollaboratorRedesign(t *testing.T) {
	joined := strings.Join(collaboratorRedesign, "\n")
	assert.Contains(t, joined, "RENAME COLUMN collaborator TO collaborator_ids")
	assert.Contains(t, joined, "UNIQUE(sender_id, receiver_id)")
	assert.Contains(t, joined, "status IN ('pending', 'accepted', 'rejected')")

	last := Migrations[len(Migrations)-1]
	assert.Equal(t, "collaborator_redesign", last.Name)
	assert.True(t, last.Destructive)
	assert.Equal(t, "users.collaborator", last.RequiresColumn)
}
