package querybuilder

import (
	"strconv"
	"strings"
)

// argList collects bound values and hands out postgres placeholders.
type argList struct {
	values []any
}

func (a *argList) bind(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// expand replaces each '?' in expr with the next bound placeholder.
// Surplus '?' are left as-is.
func (a *argList) expand(expr string, exprArgs []any) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			out.WriteString(a.bind(exprArgs[next]))
			next++
			continue
		}
		out.WriteByte(expr[i])
	}
	return out.String()
}

func writeWhere(buf *strings.Builder, conditions []Condition, args *argList) {
	if len(conditions) == 0 {
		return
	}
	buf.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args)
	}
}

func writeList(buf *strings.Builder, keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	buf.WriteString(keyword)
	buf.WriteString(strings.Join(parts, ", "))
}

func writeSuffix(buf *strings.Builder, suffix string, args *argList) {
	if suffix == "" {
		return
	}
	buf.WriteString(" ")
	buf.WriteString(args.expand(suffix, nil))
}
