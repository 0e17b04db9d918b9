package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/task-marketplace/internal/models"
)

// CreateUserWithSession сохраняет нового пользователя вместе с его первой
// сессией в одной транзакции и возвращает созданного пользователя.
// При нарушении уникальности email возвращает ErrDuplicateEmail,
// не оставляя в базе ни пользователя без сессии, ни сессии без пользователя.
func (s *Storage) CreateUserWithSession(ctx context.Context, user models.User, session models.Session) (*models.User, error) {
	const op = "storage.CreateUserWithSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	created := user
	query := `INSERT INTO users (name, email, phone, role, password_hash, bio, specializations)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, name, email, role`
	if err := tx.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Role, user.PasswordHash,
		user.Bio, user.Specializations).Scan(
		&created.ID, &created.Name, &created.Email, &created.Role); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO user_sessions (user_id, session_token, expires_at)
			 VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query,
		created.ID, session.Token, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &created, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, role, password_hash
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdatePasswordHash заменяет хэш пароля пользователя. Используется
// для миграции устаревших bcrypt-хэшей на текущую схему при логине.
func (s *Storage) UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1
			  WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, passwordHash, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateUser сохраняет пользователя без учётных данных (административное
// создание профиля) и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO users (name, email, phone, role, password_hash, bio, specializations)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Phone, user.Role, user.PasswordHash,
		user.Bio, user.Specializations).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserProfile возвращает профиль пользователя вместе с агрегированной
// статистикой по выполненным заданиям.
func (s *Storage) GetUserProfile(ctx context.Context, userID int) (*models.User, *models.ProfileStats, error) {
	const op = "storage.GetUserProfile"
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.id, u.name, u.email, u.phone, u.role, u.rating,
			      u.avatar_url, u.bio, u.specializations, u.created_at,
			      (SELECT COUNT(*) FROM tasks WHERE author_id = u.id AND status = 'completed') AS completed_tasks,
			      (SELECT COUNT(*) FROM tasks WHERE worker_id = u.id AND status = 'completed') AS completed_works,
			      (SELECT COALESCE(SUM(price), 0) FROM tasks WHERE worker_id = u.id AND status = 'completed') AS total_earned
			  FROM users u
			  WHERE u.id = $1`
	row := s.DB.QueryRowContext(ctx, query, userID)

	u := &models.User{}
	stats := &models.ProfileStats{}
	var rating sql.NullFloat64
	var createdAt sql.NullTime
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &rating,
		&u.AvatarURL, &u.Bio, &u.Specializations, &createdAt,
		&stats.CompletedTasks, &stats.CompletedWorks, &stats.TotalEarned); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if rating.Valid {
		u.Rating = &rating.Float64
	}
	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	return u, stats, nil
}

// GetWorkHistory возвращает последние выполненные пользователем задания
// с оценками и комментариями из отзывов.
func (s *Storage) GetWorkHistory(ctx context.Context, userID, limit int) ([]*models.WorkHistoryItem, error) {
	const op = "storage.GetWorkHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.title, t.price, t.execution_date, r.rating, r.comment
			  FROM tasks t
			  LEFT JOIN reviews r ON t.id = r.task_id AND r.reviewee_id = $1
			  WHERE t.worker_id = $1 AND t.status = 'completed'
			  ORDER BY t.execution_date DESC
			  LIMIT $2`
	rows, err := s.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WorkHistoryItem
	for rows.Next() {
		var item models.WorkHistoryItem
		var executionDate sql.NullTime
		var reviewRating sql.NullFloat64
		var comment sql.NullString
		if err := rows.Scan(&item.Task, &item.Price, &executionDate,
			&reviewRating, &comment); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if executionDate.Valid {
			item.Date = executionDate.Time.Format("02.01.2006")
		}
		if reviewRating.Valid {
			item.Rating = reviewRating.Float64
		}
		if comment.Valid {
			item.Comment = &comment.String
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
