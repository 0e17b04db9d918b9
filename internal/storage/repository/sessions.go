package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/task-marketplace/internal/models"
)

// CreateSession сохраняет новую сессию пользователя.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) error {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_sessions (user_id, session_token, expires_at)
			  VALUES ($1, $2, $3)`
	if _, err := s.DB.ExecContext(ctx, query,
		session.UserID, session.Token, session.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSessionByToken возвращает сессию вместе с данными её владельца.
// Истёкшие сессии тоже возвращаются: классификация по сроку действия
// выполняется на уровне бизнес-логики.
func (s *Storage) GetSessionByToken(ctx context.Context, token string) (*models.SessionInfo, error) {
	const op = "storage.GetSessionByToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_id, s.expires_at, u.name, u.email, u.role
			  FROM user_sessions s
			  JOIN users u ON s.user_id = u.id
			  WHERE s.session_token = $1`
	info := &models.SessionInfo{}
	row := s.DB.QueryRowContext(ctx, query, token)
	if err := row.Scan(&info.SessionID, &info.UserID, &info.ExpiresAt,
		&info.Name, &info.Email, &info.Role); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return info, nil
}

// TouchSession обновляет время последней активности сессии.
func (s *Storage) TouchSession(ctx context.Context, sessionID int) error {
	const op = "storage.TouchSession"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_sessions
			  SET last_activity = CURRENT_TIMESTAMP
			  WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteSessionByToken удаляет сессию по токену и возвращает количество
// удалённых строк. Отсутствие строки не является ошибкой.
func (s *Storage) DeleteSessionByToken(ctx context.Context, token string) (int, error) {
	const op = "storage.DeleteSessionByToken"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM user_sessions WHERE session_token = $1`
	result, err := s.DB.ExecContext(ctx, query, token)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
