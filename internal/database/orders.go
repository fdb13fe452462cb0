package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gvcargo/internal/models"
)

// CreateOrder inserts a committed order. A collision on the applicant
// code returns ErrDuplicateApplicantCode so the caller can re-allocate
// instead of silently dropping the order.
func (db *DB) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
        INSERT INTO orders (user_id, full_name, phone, order_number, order_date, latitude, longitude, applicant_code, location, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	result, err := db.db.ExecContext(ctx, query,
		order.UserID,
		order.FullName,
		order.Phone,
		order.OrderNumber,
		order.OrderDate,
		order.Latitude,
		order.Longitude,
		order.ApplicantCode,
		order.Location,
		order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateApplicantCode, order.ApplicantCode)
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	order.ID = id
	return nil
}

// CountOrders возвращает количество оформленных заказов
func (db *DB) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := db.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM orders`).Scan(&count)
	return count, err
}

// GetOrdersByTelegramID returns all orders owned by a Telegram
// identity in insertion order. The browser snapshots this slice.
func (db *DB) GetOrdersByTelegramID(ctx context.Context, telegramID int64) ([]models.Order, error) {
	query := `
        SELECT o.id, o.user_id, u.telegram_id, o.full_name, o.phone, o.order_number, o.order_date,
               o.latitude, o.longitude, o.applicant_code, COALESCE(o.location, ''), o.created_at
        FROM orders o JOIN users u ON o.user_id = u.id
        WHERE u.telegram_id = ?
        ORDER BY o.id
    `

	rows, err := db.db.QueryContext(ctx, query, telegramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetOrderByApplicantCode looks an order up by its exact applicant
// code, joining in the owner's Telegram identity for the admin view.
func (db *DB) GetOrderByApplicantCode(ctx context.Context, code string) (*models.Order, error) {
	query := `
        SELECT o.id, o.user_id, u.telegram_id, o.full_name, o.phone, o.order_number, o.order_date,
               o.latitude, o.longitude, o.applicant_code, COALESCE(o.location, ''), o.created_at
        FROM orders o JOIN users u ON o.user_id = u.id
        WHERE o.applicant_code = ?
    `

	var order models.Order
	err := db.db.QueryRowContext(ctx, query, code).Scan(
		&order.ID,
		&order.UserID,
		&order.TelegramID,
		&order.FullName,
		&order.Phone,
		&order.OrderNumber,
		&order.OrderDate,
		&order.Latitude,
		&order.Longitude,
		&order.ApplicantCode,
		&order.Location,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, code)
		}
		return nil, err
	}

	return &order, nil
}

// GetOrder возвращает заказ по внутреннему ID
func (db *DB) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	query := `
        SELECT o.id, o.user_id, u.telegram_id, o.full_name, o.phone, o.order_number, o.order_date,
               o.latitude, o.longitude, o.applicant_code, COALESCE(o.location, ''), o.created_at
        FROM orders o JOIN users u ON o.user_id = u.id
        WHERE o.id = ?
    `

	var order models.Order
	err := db.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TelegramID,
		&order.FullName,
		&order.Phone,
		&order.OrderNumber,
		&order.OrderDate,
		&order.Latitude,
		&order.Longitude,
		&order.ApplicantCode,
		&order.Location,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetAllOrders returns every committed order, oldest first. Used by
// the admin Excel export.
func (db *DB) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT o.id, o.user_id, u.telegram_id, o.full_name, o.phone, o.order_number, o.order_date,
               o.latitude, o.longitude, o.applicant_code, COALESCE(o.location, ''), o.created_at
        FROM orders o JOIN users u ON o.user_id = u.id
        ORDER BY o.id
    `

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TelegramID,
			&order.FullName,
			&order.Phone,
			&order.OrderNumber,
			&order.OrderDate,
			&order.Latitude,
			&order.Longitude,
			&order.ApplicantCode,
			&order.Location,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
