package querybuilder

import (
	"errors"
	"reflect"
	"strings"
	"sync"
)

var (
	errNilModel     = errors.New("model cannot be nil")
	errNotStruct    = errors.New("model must be struct")
	errNoDBColumns  = errors.New("model has no db columns")
	errNoInsertRows = errors.New("insert values are required")
)

// columnPlan is the db-tagged exported fields of one struct type.
type columnPlan struct {
	columns []string
	index   []int
}

var plans sync.Map // reflect.Type -> *columnPlan

func planFor(t reflect.Type) (*columnPlan, error) {
	if p, ok := plans.Load(t); ok {
		return p.(*columnPlan), nil
	}

	p := &columnPlan{}
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		p.columns = append(p.columns, col)
		p.index = append(p.index, i)
	}
	if len(p.columns) == 0 {
		return nil, errNoDBColumns
	}

	actual, _ := plans.LoadOrStore(t, p)
	return actual.(*columnPlan), nil
}

func structValue(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, errNilModel
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errNotStruct
	}
	return v, nil
}

func (p *columnPlan) values(v reflect.Value) []any {
	out := make([]any, len(p.index))
	for i, idx := range p.index {
		out[i] = v.Field(idx).Interface()
	}
	return out
}

// InsertModel builds a single-row INSERT from the db tags of model.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	return InsertModels(table, []any{model}, suffix)
}

// InsertModels builds one multi-row INSERT. Every row must share the first
// row's struct type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, errNoInsertRows
	}

	b := InsertInto(table).Suffix(suffix)
	var plan *columnPlan
	var rowType reflect.Type
	for _, m := range models {
		v, err := structValue(m)
		if err != nil {
			return "", nil, err
		}
		if plan == nil {
			if plan, err = planFor(v.Type()); err != nil {
				return "", nil, err
			}
			rowType = v.Type()
			b.Columns(plan.columns...)
		} else if v.Type() != rowType {
			return "", nil, errors.New("insert rows must share one struct type")
		}
		b.Values(plan.values(v)...)
	}
	return b.ToSQL()
}
