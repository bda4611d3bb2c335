package lookup

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_PrepareLookupValue(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		field   *Field
		lookup  string
		value   any
		want    any
		wantErr bool
	}{
		{name: "integer from string", field: IntegerField, lookup: "exact", value: "42", want: int64(42)},
		{name: "integer from uint", field: IntegerField, lookup: "gt", value: uint8(7), want: int64(7)},
		{name: "integer from max int64 uint", field: IntegerField, lookup: "gt", value: uint64(math.MaxInt64), want: int64(math.MaxInt64)},
		{name: "integer from overflowing uint", field: IntegerField, lookup: "exact", value: uint64(math.MaxUint64), wantErr: true},
		{name: "integer from overflowing float", field: IntegerField, lookup: "exact", value: 1e19, wantErr: true},
		{name: "integer from whole float", field: IntegerField, lookup: "lt", value: 3.0, want: int64(3)},
		{name: "integer from fraction", field: IntegerField, lookup: "lt", value: 3.5, wantErr: true},
		{name: "float from int", field: FloatField, lookup: "exact", value: 2, want: float64(2)},
		{name: "boolean from string", field: BooleanField, lookup: "exact", value: "true", want: true},
		{name: "boolean from int", field: BooleanField, lookup: "exact", value: 0, want: false},
		{name: "boolean from 2", field: BooleanField, lookup: "exact", value: 2, wantErr: true},
		{name: "char from int", field: CharField, lookup: "exact", value: 12, want: "12"},
		{name: "contains stringifies", field: IntegerField, lookup: "contains", value: 12, want: "12"},
		{name: "date from string", field: DateField, lookup: "gte", value: "2024-03-01", want: day},
		{name: "date invalid", field: DateField, lookup: "gte", value: "yesterday", wantErr: true},
		{name: "isnull requires bool", field: GenericField, lookup: "isnull", value: 1, wantErr: true},
		{name: "unknown lookup", field: GenericField, lookup: "near", value: 1, wantErr: true},
		{name: "in from array", field: IntegerField, lookup: "in", value: [2]string{"1", "2"}, want: []any{int64(1), int64(2)}},
		{name: "in drops nil", field: IntegerField, lookup: "in", value: []any{1, nil}, want: []any{int64(1)}},
		{name: "in with expression item", field: GenericField, lookup: "in", value: []any{Col("other"), 1}, wantErr: true},
		{name: "in with overflowing item", field: IntegerField, lookup: "in", value: []uint64{1, math.MaxUint64}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.field.PrepareLookupValue(tc.lookup, Literal(tc.value))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v.Literal())
		})
	}
}

func TestField_PrepareLookupValueUnknownLookup(t *testing.T) {
	_, err := GenericField.PrepareLookupValue("near", Literal(1))
	var target *UnsupportedLookupError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "near", target.Lookup)
	assert.Equal(t, "Field", target.Type)
}

func TestField_PrepareLookupValueInvalid(t *testing.T) {
	testCases := []struct {
		name   string
		field  *Field
		lookup string
		value  any
		wantIn string
	}{
		{name: "uint overflow", field: IntegerField, lookup: "exact", value: uint64(math.MaxUint64), wantIn: "overflows int64"},
		{name: "expression inside collection", field: GenericField, lookup: "in", value: []any{1, Col("other")}, wantIn: "expressions are not allowed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.field.PrepareLookupValue(tc.lookup, Literal(tc.value))
			var target *InvalidLookupValueError
			require.True(t, errors.As(err, &target))
			assert.Equal(t, tc.lookup, target.Lookup)
			assert.Contains(t, err.Error(), tc.wantIn)
		})
	}
}

func TestField_ExpressionIsNotPrepared(t *testing.T) {
	col := Col("other")
	v, err := IntegerField.PrepareLookupValue("exact", SubExpression(col))
	require.NoError(t, err)
	assert.True(t, v.IsExpression())
	assert.Same(t, col, v.Expression())
}

func TestField_PrepareDatabaseValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.FixedZone("UTC+8", 8*3600))

	testCases := []struct {
		name     string
		field    *Field
		lookup   string
		value    any
		prepared bool
		want     any
	}{
		{name: "date formats", field: DateField, lookup: "exact", value: ts, prepared: true, want: "2024-03-01"},
		{name: "datetime kept without tz", field: DateTimeField, lookup: "exact", value: ts, prepared: true, want: ts},
		{name: "startswith unprepared", field: CharField, lookup: "startswith", value: 10, want: "10%"},
		{name: "iendswith", field: CharField, lookup: "iendswith", value: "x_y", prepared: true, want: `%x\_y`},
		{name: "in dates", field: DateField, lookup: "in", value: []any{ts}, prepared: true, want: []any{"2024-03-01"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.field.PrepareDatabaseValue(tc.lookup, tc.value, Mysql{}, tc.prepared)
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestFieldByName(t *testing.T) {
	f, ok := FieldByName("TextField")
	require.True(t, ok)
	assert.Same(t, TextField, f)
	assert.True(t, f.Kind().IsA(KindCharField))

	_, ok = FieldByName("JSONField")
	assert.False(t, ok)
}
