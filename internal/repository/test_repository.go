package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepmitra/mocktest-backend/internal/model"
)

// TestRepository handles test data access, including the transactional
// test-with-questions insert and cascading delete.
type TestRepository struct {
	pool *pgxpool.Pool
}

// NewTestRepository creates a new TestRepository.
func NewTestRepository(pool *pgxpool.Pool) *TestRepository {
	return &TestRepository{pool: pool}
}

// ExistsByKey reports whether a test already exists for the composite
// uniqueness key (date, test type, phase).
func (r *TestRepository) ExistsByKey(ctx context.Context, date time.Time, testType model.TestType, phase model.Phase) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM tests WHERE test_date = $1 AND test_type = $2 AND phase = $3)`,
		date, testType, phase,
	).Scan(&exists)
	return exists, err
}

// CreateWithQuestions inserts a test and its full question batch in a
// single transaction. Either the test and every question become visible
// together, or nothing does. A lost uniqueness race surfaces as
// ErrUniqueViolation.
func (r *TestRepository) CreateWithQuestions(ctx context.Context, t *model.Test, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO tests (title, test_date, start_utc, end_utc, total_questions, test_type, phase)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, is_active, created_at, updated_at`,
		t.Title, t.TestDate, t.StartUTC, t.EndUTC, t.TotalQuestions, t.TestType, t.Phase,
	).Scan(&t.ID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}

	rows := make([][]interface{}, len(questions))
	for i := range questions {
		q := &questions[i]
		q.ID = uuid.New()
		q.TestID = t.ID
		rows[i] = []interface{}{
			q.ID, q.TestID, q.QuestionNumber, q.QuestionStatement,
			q.Option1, q.Option2, q.Option3, q.Option4,
			q.CorrectOption, q.Phase,
		}
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"questions"},
		[]string{"id", "test_id", "question_number", "question_statement",
			"option1", "option2", "option3", "option4", "correct_option", "phase"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy questions: %w", err)
	}

	return tx.Commit(ctx)
}

// List retrieves all tests ordered by date descending, phase ascending.
func (r *TestRepository) List(ctx context.Context) ([]model.Test, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, test_date, start_utc, end_utc, total_questions,
		        test_type, phase, is_active, created_at, updated_at
		 FROM tests
		 ORDER BY test_date DESC, phase ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.Test
	for rows.Next() {
		var t model.Test
		if err := rows.Scan(&t.ID, &t.Title, &t.TestDate, &t.StartUTC, &t.EndUTC,
			&t.TotalQuestions, &t.TestType, &t.Phase, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// DeleteCascade removes a test and every question referencing it in one
// transaction. Returns false if the test did not exist; other tests'
// data is untouched either way. The FK's ON DELETE CASCADE is the
// storage-level backstop; the explicit question delete keeps the cascade
// observable in the same transaction.
func (r *TestRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM questions WHERE test_id = $1`, id); err != nil {
		return false, fmt.Errorf("delete questions: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete test: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	return true, tx.Commit(ctx)
}
