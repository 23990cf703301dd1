// Package repository implements run ledger persistence.
// Repositories support both PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/liquidity/internal/database"
	apperrors "github.com/allisson/liquidity/internal/errors"
	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
)

// PostgreSQLRunRepository implements run ledger persistence for PostgreSQL databases.
type PostgreSQLRunRepository struct {
	db *sql.DB
}

// NewPostgreSQLRunRepository creates a new PostgreSQLRunRepository.
func NewPostgreSQLRunRepository(db *sql.DB) *PostgreSQLRunRepository {
	return &PostgreSQLRunRepository{db: db}
}

// Create inserts a new pipeline run into the PostgreSQL database.
func (p *PostgreSQLRunRepository) Create(ctx context.Context, run *runlogDomain.PipelineRun) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO pipeline_runs (id, command, parameters, processed, delivered, failed, status, started_at, finished_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		run.ID,
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

// CreateFailure inserts one record failure into the PostgreSQL database.
func (p *PostgreSQLRunRepository) CreateFailure(ctx context.Context, failure *runlogDomain.RecordFailure) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO record_failures (id, run_id, record_ref, error_detail, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		failure.ID,
		failure.RunID,
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
func (p *PostgreSQLRunRepository) ListRecent(ctx context.Context, limit int) ([]*runlogDomain.PipelineRun, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, command, parameters, processed, delivered, failed, status, started_at, finished_at
			  FROM pipeline_runs
			  ORDER BY started_at DESC
			  LIMIT $1`

	rows, err := querier.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list pipeline runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []*runlogDomain.PipelineRun
	for rows.Next() {
		var run runlogDomain.PipelineRun
		if err := rows.Scan(
			&run.ID,
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
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate pipeline runs")
	}

	return runs, nil
}
