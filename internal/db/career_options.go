package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/career-guide/internal/types"
)

// ReplaceCareerOptions swaps userID's stored options for options in one
// transaction, so readers see either the old batch or the new one.
func (db *DB) ReplaceCareerOptions(ctx context.Context, userID int64, options []types.CareerOption) (err error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		err = withRollback(err, tx.Rollback(ctx))
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM career_options WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete career options: %w", err)
	}

	batch := &pgx.Batch{}
	for i, opt := range options {
		skills, err := json.Marshal(nonNilStrings(opt.RequiredSkills))
		if err != nil {
			return fmt.Errorf("failed to marshal required skills: %w", err)
		}
		batch.Queue(
			`INSERT INTO career_options (id, user_id, name, description, salary_range_min, salary_range_max,
				currency, required_skills, growth_rate, position, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			opt.ID, userID, opt.Name, opt.Description, opt.SalaryRangeMin, opt.SalaryRangeMax,
			opt.Currency, skills, opt.GrowthRate, i, opt.CreatedAt, opt.UpdatedAt,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert career options: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit career options: %w", err)
	}
	return nil
}

// withRollback adds a failed rollback to err. Rolling back a committed
// transaction reports pgx.ErrTxClosed, which is not a failure.
func withRollback(err, rErr error) error {
	if rErr == nil || errors.Is(rErr, pgx.ErrTxClosed) {
		return err
	}
	return errors.Join(err, fmt.Errorf("failed to roll back career options: %w", rErr))
}

// ListCareerOptions returns userID's current batch in insertion order.
func (db *DB) ListCareerOptions(ctx context.Context, userID int64) ([]types.CareerOption, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, name, description, salary_range_min, salary_range_max, currency,
			required_skills, growth_rate, created_at, updated_at
		 FROM career_options WHERE user_id = $1 ORDER BY position`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list career options: %w", err)
	}
	defer rows.Close()

	var out []types.CareerOption
	for rows.Next() {
		var (
			opt    types.CareerOption
			skills []byte
		)
		if err := rows.Scan(&opt.ID, &opt.UserID, &opt.Name, &opt.Description, &opt.SalaryRangeMin,
			&opt.SalaryRangeMax, &opt.Currency, &skills, &opt.GrowthRate, &opt.CreatedAt, &opt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan career option: %w", err)
		}
		if err := unmarshalJSONB(skills, &opt.RequiredSkills); err != nil {
			return nil, fmt.Errorf("failed to decode required skills: %w", err)
		}
		out = append(out, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list career options: %w", err)
	}
	return out, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
