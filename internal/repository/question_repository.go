package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prepmitra/mocktest-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByTest retrieves all questions for a test, ordered by question number.
func (r *QuestionRepository) ListByTest(ctx context.Context, testID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, test_id, question_number, question_statement,
		        option1, option2, option3, option4, correct_option, phase
		 FROM questions WHERE test_id = $1
		 ORDER BY question_number`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.TestID, &q.QuestionNumber, &q.QuestionStatement,
			&q.Option1, &q.Option2, &q.Option3, &q.Option4, &q.CorrectOption, &q.Phase); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Delete removes a single question and decrements the parent test's
// total_questions counter in the same transaction. Returns false if the
// question did not exist.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var testID uuid.UUID
	err = tx.QueryRow(ctx,
		`DELETE FROM questions WHERE id = $1 RETURNING test_id`, id,
	).Scan(&testID)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("delete question: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE tests SET total_questions = total_questions - 1, updated_at = NOW() WHERE id = $1`,
		testID)
	if err != nil {
		return false, fmt.Errorf("decrement counter: %w", err)
	}

	return true, tx.Commit(ctx)
}
