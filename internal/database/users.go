package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gvcargo/internal/models"
)

// GetOrCreateUser resolves a Telegram identity to a durable user
// record, creating one on first contact. Consent defaults to false
// and language stays empty until the user picks one.
func (db *DB) GetOrCreateUser(ctx context.Context, telegramID int64, username string) (*models.User, error) {
	user, err := db.GetUserByTelegramID(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now()
	result, err := db.db.ExecContext(ctx,
		`INSERT INTO users (telegram_id, username, agreed, created_at, updated_at) VALUES (?, ?, 0, ?, ?)`,
		telegramID, username, now, now,
	)
	if err != nil {
		// Конкурентный /start мог успеть создать запись
		if isUniqueViolation(err) {
			return db.GetUserByTelegramID(ctx, telegramID)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	db.logger.Info().Int64("telegram_id", telegramID).Int64("user_id", id).Msg("Пользователь создан")

	return &models.User{
		ID:         id,
		TelegramID: telegramID,
		Username:   username,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// GetUserByTelegramID возвращает пользователя по Telegram ID
func (db *DB) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `
        SELECT id, telegram_id, username, agreed, COALESCE(language_code, ''), created_at, updated_at
        FROM users WHERE telegram_id = ?
    `

	var user models.User
	err := db.db.QueryRowContext(ctx, query, telegramID).Scan(
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.Agreed,
		&user.LanguageCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// SetUserLanguage устанавливает язык интерфейса пользователя
func (db *DB) SetUserLanguage(ctx context.Context, telegramID int64, lang string) error {
	query := `UPDATE users SET language_code = ?, updated_at = ? WHERE telegram_id = ?`

	_, err := db.db.ExecContext(ctx, query, lang, time.Now(), telegramID)
	return err
}

// SetUserConsent flips the consent flag to true. There is no reverse
// operation: once given, consent stays.
func (db *DB) SetUserConsent(ctx context.Context, telegramID int64) error {
	query := `UPDATE users SET agreed = 1, updated_at = ? WHERE telegram_id = ?`

	_, err := db.db.ExecContext(ctx, query, time.Now(), telegramID)
	return err
}

// CountUsers возвращает общее количество зарегистрированных пользователей
func (db *DB) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM users`).Scan(&count)
	return count, err
}

// GetAllUsers возвращает всех пользователей
func (db *DB) GetAllUsers(ctx context.Context) ([]models.User, error) {
	query := `
        SELECT id, telegram_id, username, agreed, COALESCE(language_code, ''), created_at, updated_at
        FROM users ORDER BY created_at DESC
    `

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.TelegramID,
			&user.Username,
			&user.Agreed,
			&user.LanguageCode,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
