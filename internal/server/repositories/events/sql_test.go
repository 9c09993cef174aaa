package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLRepository(db), mock
}

var at = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

const (
	appendQ = `(?s)^INSERT\s+INTO\s+events\s*\(seq,\s*id,\s*kind,\s*identity,\s*username,\s*email,\s*occurred_at\)\s*VALUES`
	listQ   = `(?s)^SELECT\s+seq,.*FROM\s+events\s+WHERE\s+seq\s*>\s*\$1\s+ORDER\s+BY\s+seq\s+LIMIT\s+\$2$`
	lastQ   = `SELECT COALESCE\(MAX\(seq\), 0\), COALESCE\(MAX\(occurred_at\), 0\) FROM events`
)

func TestAppend(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(appendQ).
		WithArgs(int64(7), "ev-7", "Registered", "0xA", "alice", "a@x.com", at.UnixMicro()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), models.Event{
		Seq: 7, ID: "ev-7", Kind: models.EventRegistered, Identity: "0xA",
		Username: "alice", Email: "a@x.com", Timestamp: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(appendQ).WillReturnError(errors.New("duplicate key"))

	err := repo.Append(context.Background(), models.Event{Seq: 1, Timestamp: at})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: duplicate key")
}

func TestListSince(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"seq", "id", "kind", "identity", "username", "email", "occurred_at"}).
		AddRow(int64(3), "ev-3", "LoggedIn", "0xA", "", "", at.UnixMicro()).
		AddRow(int64(4), "ev-4", "Updated", "0xA", "alice", "b@x.com", at.Add(time.Second).UnixMicro())
	mock.ExpectQuery(listQ).WithArgs(int64(2), 10).WillReturnRows(rows)

	list, err := repo.ListSince(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.EventLoggedIn, list[0].Kind)
	assert.True(t, list[0].Timestamp.Equal(at))
	assert.Equal(t, "b@x.com", list[1].Email)
}

func TestListSince_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQ).WillReturnError(errors.New("timeout"))

	_, err := repo.ListSince(context.Background(), 0, 10)
	require.Error(t, err)
}

func TestLast(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(lastQ).WillReturnRows(sqlmock.NewRows([]string{"seq", "at"}).AddRow(int64(42), at.UnixMicro()))

	seq, last, err := repo.Last(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
	assert.True(t, last.Equal(at))
}

func TestLast_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(lastQ).WillReturnRows(sqlmock.NewRows([]string{"seq", "at"}).AddRow(int64(0), int64(0)))

	seq, last, err := repo.Last(context.Background())
	require.NoError(t, err)
	assert.Zero(t, seq)
	assert.True(t, last.IsZero())
}

func TestLast_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(lastQ).WillReturnError(errors.New("gone"))
	_, _, err := repo.Last(context.Background())
	require.Error(t, err)
}
