package models

import "time"

type Order struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	TelegramID    int64     `json:"telegram_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	OrderNumber   string    `json:"order_number"`
	OrderDate     time.Time `json:"order_date"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
	ApplicantCode string    `json:"applicant_code"`
	Location      string    `json:"location"` // plain maps URL, empty when no coordinates
	CreatedAt     time.Time `json:"created_at"`
}

// HasLocation reports whether the client shared coordinates.
func (o *Order) HasLocation() bool {
	return o.Latitude != nil && o.Longitude != nil
}
