package templates

import "github.com/tradescout/tradescout/internal/core"

// DashboardData is everything the overview page shows.
type DashboardData struct {
	Summary      core.Summary
	LastError    string
	Connected    bool
	AIConfigured bool
}

var priorityNames = map[string]string{
	string(core.PriorityHigh):   core.PriorityLabel(core.PriorityHigh),
	string(core.PriorityMedium): core.PriorityLabel(core.PriorityMedium),
	string(core.PriorityLow):    core.PriorityLabel(core.PriorityLow),
}

func countName(name string, names map[string]string) string {
	if label, ok := names[name]; ok {
		return label
	}
	return name
}
