package querybuilder

import (
	"fmt"
	"strings"
)

type DeleteBuilder struct {
	table    string
	where    []Condition
	allowAll bool
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// All permits a DELETE without a WHERE clause.
func (b *DeleteBuilder) All() *DeleteBuilder {
	b.allowAll = true
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 && !b.allowAll {
		return "", nil, fmt.Errorf("delete without conditions on %s", b.table)
	}

	var buf strings.Builder
	var args argList
	buf.WriteString("DELETE FROM ")
	buf.WriteString(b.table)
	writeWhere(&buf, b.where, &args)

	return buf.String(), args.values, nil
}
