package models

import "time"

// UserState holds the scratch data collected during an order intake
// conversation. It lives in the state repository (redis with memory
// failover) and is cleared on commit, cancel and /start.
type UserState struct {
	UserID      int64                  `json:"user_id"`
	CurrentStep string                 `json:"current_step"`
	TempData    map[string]interface{} `json:"temp_data"`
}

func (s *UserState) GetString(key string) string {
	if s.TempData == nil {
		return ""
	}
	val, ok := s.TempData[key]
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func (s *UserState) GetInt64(key string) int64 {
	if s.TempData == nil {
		return 0
	}
	val, ok := s.TempData[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (s *UserState) GetFloat64(key string) (float64, bool) {
	if s.TempData == nil {
		return 0, false
	}
	val, ok := s.TempData[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func (s *UserState) GetTime(key string) time.Time {
	if s.TempData == nil {
		return time.Time{}
	}
	val, ok := s.TempData[key]
	if !ok {
		return time.Time{}
	}
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

// BrowseCursor is the transient pointer a user holds into a snapshot
// of their own orders while paging through them. Overwritten whenever
// browsing restarts.
type BrowseCursor struct {
	UserID    int64   `json:"user_id"`
	Orders    []Order `json:"orders"`
	Index     int     `json:"index"`
	MessageID int     `json:"message_id"`
}

// Advance moves the cursor one position in either direction with
// cyclic wraparound.
func (c *BrowseCursor) Advance(forward bool) {
	total := len(c.Orders)
	if total == 0 {
		return
	}
	if forward {
		c.Index = (c.Index + 1) % total
	} else {
		c.Index = (c.Index - 1 + total) % total
	}
}

// Current returns the order under the cursor.
func (c *BrowseCursor) Current() *Order {
	if c.Index < 0 || c.Index >= len(c.Orders) {
		return nil
	}
	return &c.Orders[c.Index]
}
