package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/liquidity/internal/database"
	apperrors "github.com/allisson/liquidity/internal/errors"
	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
)

// MySQLRunRepository implements run ledger persistence for MySQL databases.
type MySQLRunRepository struct {
	db *sql.DB
}

// NewMySQLRunRepository creates a new MySQLRunRepository.
func NewMySQLRunRepository(db *sql.DB) *MySQLRunRepository {
	return &MySQLRunRepository{db: db}
}

// Create inserts a new pipeline run into the MySQL database.
func (m *MySQLRunRepository) Create(ctx context.Context, run *runlogDomain.PipelineRun) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO pipeline_runs (id, command, parameters, processed, delivered, failed, status, started_at, finished_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := run.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal run id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		run.Command,
		run.Parameters,
		run.Processed,
		run.Delivered,
		run.Failed,
		run.Status,
		run.StartedAt,
		run.FinishedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create pipeline run")
	}
	return nil
}

// CreateFailure inserts one record failure into the MySQL database.
func (m *MySQLRunRepository) CreateFailure(ctx context.Context, failure *runlogDomain.RecordFailure) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO record_failures (id, run_id, record_ref, error_detail, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := failure.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal failure id")
	}

	runID, err := failure.RunID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal run id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		runID,
		failure.RecordRef,
		failure.ErrorDetail,
		failure.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create record failure")
	}
	return nil
}

// ListRecent returns the most recent pipeline runs, newest first.
func (m *MySQLRunRepository) ListRecent(ctx context.Context, limit int) ([]*runlogDomain.PipelineRun, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, command, parameters, processed, delivered, failed, status, started_at, finished_at
			  FROM pipeline_runs
			  ORDER BY started_at DESC
			  LIMIT ?`

	rows, err := querier.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pipeline runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []*runlogDomain.PipelineRun
	for rows.Next() {
		var run runlogDomain.PipelineRun
		var id []byte
		if err := rows.Scan(
			&id,
			&run.Command,
			&run.Parameters,
			&run.Processed,
			&run.Delivered,
			&run.Failed,
			&run.Status,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan pipeline run")
		}
		runID, err := uuid.FromBytes(id)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse run id")
		}
		run.ID = runID
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate pipeline runs")
	}

	return runs, nil
}
