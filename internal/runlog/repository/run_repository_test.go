package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
)

func makeRun() *runlogDomain.PipelineRun {
	return &runlogDomain.PipelineRun{
		ID:         uuid.Must(uuid.NewV7()),
		Command:    "publish-events",
		Parameters: `{"input_key":"forecast.csv"}`,
		Processed:  500,
		Delivered:  498,
		Failed:     2,
		Status:     runlogDomain.RunStatusPartial,
		StartedAt:  time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2025, 8, 26, 12, 0, 42, 0, time.UTC),
	}
}

func TestPostgreSQLRunRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := NewPostgreSQLRunRepository(db)
		run := makeRun()

		mock.ExpectExec(`INSERT INTO pipeline_runs`).
			WithArgs(
				run.ID,
				run.Command,
				run.Parameters,
				run.Processed,
				run.Delivered,
				run.Failed,
				run.Status,
				run.StartedAt,
				run.FinishedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Create(ctx, run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateFailure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := NewPostgreSQLRunRepository(db)
		failure := &runlogDomain.RecordFailure{
			ID:          uuid.Must(uuid.NewV7()),
			RunID:       uuid.Must(uuid.NewV7()),
			RecordRef:   42,
			ErrorDetail: "amount is not numeric",
			CreatedAt:   time.Date(2025, 8, 26, 12, 0, 42, 0, time.UTC),
		}

		mock.ExpectExec(`INSERT INTO record_failures`).
			WithArgs(failure.ID, failure.RunID, failure.RecordRef, failure.ErrorDetail, failure.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.CreateFailure(ctx, failure))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRecent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := NewPostgreSQLRunRepository(db)
		run := makeRun()

		rows := sqlmock.NewRows([]string{
			"id", "command", "parameters", "processed", "delivered", "failed", "status", "started_at", "finished_at",
		}).AddRow(
			run.ID, run.Command, run.Parameters, run.Processed, run.Delivered, run.Failed,
			string(run.Status), run.StartedAt, run.FinishedAt,
		)
		mock.ExpectQuery(`SELECT (.+) FROM pipeline_runs`).WithArgs(10).WillReturnRows(rows)

		runs, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run.ID, runs[0].ID)
		assert.Equal(t, "publish-events", runs[0].Command)
		assert.Equal(t, runlogDomain.RunStatusPartial, runs[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Create_DatabaseError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := NewPostgreSQLRunRepository(db)
		run := makeRun()

		mock.ExpectExec(`INSERT INTO pipeline_runs`).WillReturnError(assert.AnError)

		err = repo.Create(ctx, run)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestMySQLRunRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := NewMySQLRunRepository(db)
		run := makeRun()
		id, err := run.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO pipeline_runs`).
			WithArgs(
				id,
				run.Command,
				run.Parameters,
				run.Processed,
				run.Delivered,
				run.Failed,
				run.Status,
				run.StartedAt,
				run.FinishedAt,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Create(ctx, run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ListRecent", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		repo := NewMySQLRunRepository(db)
		run := makeRun()
		id, err := run.ID.MarshalBinary()
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{
			"id", "command", "parameters", "processed", "delivered", "failed", "status", "started_at", "finished_at",
		}).AddRow(
			id, run.Command, run.Parameters, run.Processed, run.Delivered, run.Failed,
			string(run.Status), run.StartedAt, run.FinishedAt,
		)
		mock.ExpectQuery(`SELECT (.+) FROM pipeline_runs`).WithArgs(10).WillReturnRows(rows)

		runs, err := repo.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, run.ID, runs[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
