package templates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradescout/tradescout/internal/core"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestErrorAlert(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		code    string
		want    []string
		notWant []string
	}{
		{
			name:   "full",
			action: "Try again",
			code:   "DB001",
			want:   []string{`role="alert"`, "Try again", "Error code: DB001"},
		},
		{
			name:    "message only",
			notWant: []string{"alert-action", "Error code"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, ErrorAlert("<b>failed</b>", tt.action, tt.code))
			assert.Contains(t, out, "&lt;b&gt;failed&lt;/b&gt;")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	records := []core.Record{
		core.NewRecord("1", now, core.Input{
			Country: "Qatar", CompanyName: "Globex", Sector: "Energy",
			InterestStatus: core.InterestYes, Priority: core.PriorityHigh,
			FollowUpStatus: core.FollowUpNone, ActionNote: "met",
		}),
	}

	out := render(t, Dashboard(DashboardData{
		Summary:      core.Summarize(records, now),
		LastError:    "load failed",
		Connected:    false,
		AIConfigured: true,
	}))

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Database unreachable")
	assert.Contains(t, out, "load failed")
	assert.NotContains(t, out, "AI analysis is disabled")
	assert.Contains(t, out, "<td>Yüksek</td>")
	assert.Contains(t, out, "<strong>Globex</strong> Qatar, Energy")
	assert.Contains(t, out, "<td>2024-06</td>")
	assert.NotContains(t, out, "No customers yet.")
}

func TestDashboard_Empty(t *testing.T) {
	out := render(t, Dashboard(DashboardData{Connected: true}))

	assert.NotContains(t, out, "Database unreachable")
	assert.NotContains(t, out, `role="alert"`)
	assert.Contains(t, out, "No customers yet.")
}
