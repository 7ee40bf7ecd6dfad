package store

// query.go builds the SQL for customer lookups.
//
// Column names come from core.CustomerFields so the table layout has a single
// source. Values are always bound as $N parameters.

import (
	"fmt"
	"strings"

	"github.com/tradescout/tradescout/internal/core"
)

const selectColumns = `id::text, country, company_name, website, sector, interest_status, priority, action_note, follow_up_status, created_at`

func column(field string) string {
	spec, ok := core.Spec(field)
	if !ok {
		panic(fmt.Sprintf("store: unknown customer field %q", field))
	}
	return spec.DBColumn
}

// whereBuilder accumulates AND-combined conditions and their arguments.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *whereBuilder) build() (string, []interface{}) {
	if len(w.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.conds, " AND "), w.args
}

// buildSearchQuery compiles f into a SELECT over customers, newest first.
func buildSearchQuery(f core.SearchFilters) (string, []interface{}) {
	var wb whereBuilder

	if term := strings.TrimSpace(f.Term); term != "" {
		wb.add(column("companyName")+" ILIKE $%d", "%"+escapeLike(term)+"%")
	}
	if f.Country != "" {
		wb.add(column("country")+" = $%d", f.Country)
	}
	if f.Sector != "" {
		wb.add(column("sector")+" = $%d", f.Sector)
	}
	if f.Priority != "" {
		wb.add(column("priority")+" = $%d", string(f.Priority))
	}
	if !f.DateFrom.IsZero() {
		wb.add("created_at >= $%d", core.DayStart(f.DateFrom))
	}
	if !f.DateTo.IsZero() {
		wb.add("created_at < $%d", f.UpperBound())
	}

	where, args := wb.build()
	return "SELECT " + selectColumns + " FROM customers" + where + " ORDER BY created_at DESC", args
}

// escapeLike escapes the ILIKE wildcards so a search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func buildInsertQuery() string {
	cols := mutableColumns()
	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO customers (%s) VALUES (%s) RETURNING %s",
		strings.Join(cols, ", "), strings.Join(placeholders, ", "), selectColumns)
}

func buildUpdateQuery() string {
	cols := mutableColumns()
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	return fmt.Sprintf("UPDATE customers SET %s, updated_at = now() WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(cols)+1, selectColumns)
}

func mutableColumns() []string {
	cols := make([]string, len(core.CustomerFields))
	for i, spec := range core.CustomerFields {
		cols[i] = spec.DBColumn
	}
	return cols
}
