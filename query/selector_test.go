package query

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fyerfyer/fyer-lookup/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestSelector_Build(t *testing.T) {
	testCases := []struct {
		name     string
		selector func(b *Builder) *Selector
		wantSQL  string
		wantArgs []any
		wantErr  bool
	}{
		{
			name: "all columns",
			selector: func(b *Builder) *Selector {
				return NewSelector(nil, b).From("users")
			},
			wantSQL: "SELECT * FROM `users`;",
		},
		{
			name: "columns and filters",
			selector: func(b *Builder) *Selector {
				return NewSelector(nil, b).Select("id", "name").From("users").
					Where(Where(lookup.Col("name"), "contains", "li")).
					Where(Where(lookup.Col("deleted_at"), "isnull", true))
			},
			wantSQL:  "SELECT `id`, `name` FROM `users` WHERE `name` LIKE BINARY ? AND `deleted_at` IS NULL;",
			wantArgs: []any{"%li%"},
		},
		{
			name: "missing table",
			selector: func(b *Builder) *Selector {
				return NewSelector(nil, b)
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, err := tc.selector(NewBuilder(lookup.Mysql{})).Build(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantSQL, q.SQL)
			assert.Equal(t, tc.wantArgs, q.Args)
		})
	}
}

func TestSelector_GetMulti(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT `id`, `name` FROM `users` WHERE `id` IN (?, ?);").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, []byte("Tom")).
			AddRow(2, "Jerry"))

	rows, err := NewSelector(mockDB, NewBuilder(lookup.Mysql{})).
		Select("id", "name").
		From("users").
		Where(Where(lookup.Col("id").Typed(lookup.IntegerField), "in", []int{1, 2})).
		GetMulti(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tom", rows[0]["name"])
	assert.Equal(t, "Jerry", rows[1]["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelector_GetMultiEmptyResultSet(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	// 没有设置任何期望，访问数据库会导致测试失败
	rows, err := NewSelector(mockDB, NewBuilder(lookup.Mysql{})).
		From("users").
		Where(Where(lookup.Col("id"), "in", []int{})).
		GetMulti(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelector_GetMultiQueryError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT").WillReturnError(sql.ErrConnDone)

	_, err = NewSelector(mockDB, NewBuilder(lookup.Mysql{})).
		From("users").
		Where(Where(lookup.Col("id"), "", 1)).
		GetMulti(context.Background())
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

// TestSelector_Sqlite 在内存数据库上执行编译出的语句
func TestSelector_Sqlite(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	_, err = db.ExecContext(ctx, `CREATE TABLE "users" (
		"id" INTEGER PRIMARY KEY,
		"name" TEXT NOT NULL,
		"age" INTEGER NOT NULL,
		"created" TEXT NOT NULL,
		"deleted_at" TEXT
	)`)
	require.NoError(t, err)

	users := []struct {
		id      int
		name    string
		age     int
		created time.Time
		deleted any
	}{
		{1, "Alice", 30, time.Date(2020, 5, 1, 10, 0, 0, 0, time.UTC), nil},
		{2, "Bob", 17, time.Date(2021, 6, 2, 10, 0, 0, 0, time.UTC), nil},
		{3, "Carol_1", 45, time.Date(2020, 7, 3, 10, 0, 0, 0, time.UTC), "2022-01-01"},
		{4, "Carolx1", 25, time.Date(2019, 8, 4, 10, 0, 0, 0, time.UTC), nil},
	}
	for _, u := range users {
		_, err = db.ExecContext(ctx, `INSERT INTO "users" VALUES (?, ?, ?, ?, ?)`,
			u.id, u.name, u.age, u.created.Format("2006-01-02 15:04:05"), u.deleted)
		require.NoError(t, err)
	}

	name := lookup.Col("name").Typed(lookup.CharField)
	age := lookup.Col("age").Typed(lookup.IntegerField)
	created := lookup.Col("created").Typed(lookup.DateTimeField)

	testCases := []struct {
		name    string
		filters []Filter
		wantIDs []int64
	}{
		{
			name:    "startswith",
			filters: []Filter{Where(name, "startswith", "Car")},
			wantIDs: []int64{3, 4},
		},
		{
			name:    "underscore is escaped",
			filters: []Filter{Where(name, "contains", "_")},
			wantIDs: []int64{3},
		},
		{
			name:    "year",
			filters: []Filter{Where(created, "year", 2020)},
			wantIDs: []int64{1, 3},
		},
		{
			name:    "range and isnull",
			filters: []Filter{Where(age, "range", []int{18, 40}), Where(lookup.Col("deleted_at"), "isnull", true)},
			wantIDs: []int64{1, 4},
		},
		{
			name:    "in",
			filters: []Filter{Where(lookup.Col("id"), "in", []int{2, 4, 9})},
			wantIDs: []int64{2, 4},
		},
		{
			name:    "length transform",
			filters: []Filter{Where(name, "length__gt", 5)},
			wantIDs: []int64{3, 4},
		},
		{
			name:    "empty in",
			filters: []Filter{Where(lookup.Col("id"), "in", []int{})},
			wantIDs: []int64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := NewSelector(db, NewBuilder(lookup.Sqlite{})).
				Select("id").
				From("users").
				Where(tc.filters...).
				GetMulti(ctx)
			require.NoError(t, err)

			ids := make([]int64, 0, len(rows))
			for _, row := range rows {
				ids = append(ids, row["id"].(int64))
			}
			assert.ElementsMatch(t, tc.wantIDs, ids)
		})
	}
}
