package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripgen/internal/models/db_models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestGenerationLogRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenerationLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "generation_logs"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	entry := &db_models.GenerationLog{
		TraceID:     "trace-1",
		RequestKind: "preferences",
		Destination: "Lisbon",
		Duration:    2,
		Interests:   pq.StringArray{"food"},
		Provider:    "gemini",
		Outcome:     db_models.OutcomeSuccess,
	}
	require.NoError(t, repo.CreateGenerationLog(context.Background(), entry))

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.NotZero(t, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerationLogRepository_CreateError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenerationLogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "generation_logs"`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	err := repo.CreateGenerationLog(context.Background(), &db_models.GenerationLog{RequestKind: "preferences", Outcome: db_models.OutcomeFailure})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerationLogRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGenerationLogRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "created_at", "trace_id", "request_kind", "destination", "duration", "interests", "outcome"}).
		AddRow(id.String(), int64(1700000000), "trace-1", "preferences", "Lisbon", 2, "{food,history}", "success")

	mock.ExpectQuery(`SELECT \* FROM "generation_logs" ORDER BY created_at DESC LIMIT`).
		WillReturnRows(rows)

	logs, err := repo.ListGenerationLogs(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, id, logs[0].ID)
	assert.Equal(t, "Lisbon", logs[0].Destination)
	assert.Equal(t, pq.StringArray{"food", "history"}, logs[0].Interests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopGenerationLogRepository(t *testing.T) {
	var repo GenerationLogRepositoryInterface = NoopGenerationLogRepository{}

	assert.NoError(t, repo.CreateGenerationLog(context.Background(), &db_models.GenerationLog{}))
	logs, err := repo.ListGenerationLogs(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Empty(t, logs)
}
