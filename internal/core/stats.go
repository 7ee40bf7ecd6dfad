package core

import (
	"sort"
	"time"
)

const (
	topCountries  = 8
	topSectors    = 6
	monthsShown   = 6
	recentRecords = 5
)

// Count is a labelled tally.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthBucket counts customers created in one calendar month.
type MonthBucket struct {
	Month      string `json:"month"` // YYYY-MM
	Customers  int    `json:"customers"`
	Interested int    `json:"interested"`
}

// Summary holds the dashboard figures.
type Summary struct {
	Total             int           `json:"total"`
	Interested        int           `json:"interested"`
	HighPriority      int           `json:"highPriority"`
	InFollowUp        int           `json:"inFollowUp"`
	DistinctCountries int           `json:"distinctCountries"`
	DistinctSectors   int           `json:"distinctSectors"`
	Countries         []Count       `json:"countries"`
	Sectors           []Count       `json:"sectors"`
	Priorities        []Count       `json:"priorities"`
	Monthly           []MonthBucket `json:"monthly"`
	Recent            []Record      `json:"recent"`
}

// Summarize computes the dashboard figures for records as of now.
func Summarize(records []Record, now time.Time) Summary {
	s := Summary{Total: len(records)}

	countries := map[string]int{}
	sectors := map[string]int{}
	priorities := map[Priority]int{}

	for _, r := range records {
		if r.InterestStatus == InterestYes {
			s.Interested++
		}
		if r.Priority == PriorityHigh {
			s.HighPriority++
		}
		if r.FollowUpStatus != FollowUpNone {
			s.InFollowUp++
		}
		countries[r.Country]++
		sectors[r.Sector]++
		priorities[r.Priority]++
	}

	s.DistinctCountries = len(countries)
	s.DistinctSectors = len(sectors)
	s.Countries = Top(countries, topCountries)
	s.Sectors = Top(sectors, topSectors)
	s.Priorities = []Count{
		{Name: string(PriorityHigh), Count: priorities[PriorityHigh]},
		{Name: string(PriorityMedium), Count: priorities[PriorityMedium]},
		{Name: string(PriorityLow), Count: priorities[PriorityLow]},
	}
	s.Monthly = monthly(records, now)
	s.Recent = recent(records, recentRecords)
	return s
}

// Top returns the n largest tallies, ties broken by name. n <= 0 means all.
func Top(tally map[string]int, n int) []Count {
	out := make([]Count, 0, len(tally))
	for name, c := range tally {
		out = append(out, Count{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func monthly(records []Record, now time.Time) []MonthBucket {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]MonthBucket, monthsShown)
	index := make(map[string]int, monthsShown)
	for i := range buckets {
		m := first.AddDate(0, i-(monthsShown-1), 0)
		key := m.Format("2006-01")
		buckets[i].Month = key
		index[key] = i
	}

	for _, r := range records {
		i, ok := index[r.CreatedAt.In(now.Location()).Format("2006-01")]
		if !ok {
			continue
		}
		buckets[i].Customers++
		if r.InterestStatus == InterestYes {
			buckets[i].Interested++
		}
	}
	return buckets
}

func recent(records []Record, n int) []Record {
	sorted := append([]Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
