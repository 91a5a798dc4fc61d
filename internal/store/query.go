package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 20
	maxLimit     = 500
)

const baseRunsSelect = `SELECT id, started_at, completed_at, passed, trigger
FROM smoke_runs`

const countRunsSelect = "SELECT COUNT(*) FROM smoke_runs"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for a run query.
// It returns the data query, the matching count query, and the positional
// parameters shared by both.
func (q *RunQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.Trigger != nil {
		conditions = append(conditions, fmt.Sprintf("trigger = $%d", paramIdx))
		args = append(args, *q.Trigger)
		paramIdx++
	}

	if q.Passed != nil {
		conditions = append(conditions, fmt.Sprintf("passed = $%d", paramIdx))
		args = append(args, *q.Passed)
		paramIdx++
	}

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("started_at >= $%d", paramIdx))
		args = append(args, *q.Since)
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY started_at DESC LIMIT %d OFFSET %d",
		baseRunsSelect, whereClause, limit, offset,
	)

	countSQL = countRunsSelect + whereClause

	return dataSQL, countSQL, args
}
