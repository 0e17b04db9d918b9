package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/task-marketplace/internal/models"
)

// ListTasks возвращает задания с автором и количеством откликов,
// отфильтрованные по категории и статусу (пустой фильтр не применяется).
func (s *Storage) ListTasks(ctx context.Context, filter models.TaskFilter) ([]*models.TaskSummary, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      t.id, t.title, t.description, t.price, t.category,
			      t.location, t.execution_date, t.status,
			      u.name, u.rating, u.avatar_url,
			      (SELECT COUNT(*) FROM task_responses WHERE task_id = t.id) AS responses
			  FROM tasks t
			  JOIN users u ON t.author_id = u.id
			  WHERE ($1 = '' OR t.category = $1)
			    AND ($2 = '' OR t.status = $2)
			  ORDER BY t.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, filter.Category, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.TaskSummary
	for rows.Next() {
		var item models.TaskSummary
		var executionDate sql.NullTime
		var rating sql.NullFloat64
		var avatar sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Price,
			&item.Category, &item.Location, &executionDate, &item.Status,
			&item.Author.Name, &rating, &avatar, &item.Responses); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if executionDate.Valid {
			item.Date = executionDate.Time.Format("02.01.2006")
		}
		if rating.Valid {
			item.Author.Rating = rating.Float64
		}
		if avatar.Valid {
			item.Author.Avatar = &avatar.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateTask вставляет новое задание и возвращает его ID.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (int, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO tasks (title, description, price, category, location, execution_date, author_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Price, task.Category,
		task.Location, task.ExecutionDate, task.AuthorID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// UpdateTaskStatus обновляет статус задания и возвращает количество
// изменённых строк.
func (s *Storage) UpdateTaskStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateTaskStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tasks
			  SET status = $1, updated_at = CURRENT_TIMESTAMP
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
