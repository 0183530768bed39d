package model

import "time"

// PaymentMethod 入隊的付款方式
type PaymentMethod string

const (
	PaymentMethodDirect PaymentMethod = "direct"
	PaymentMethodCash   PaymentMethod = "cash"
)

// IsValid 驗證付款方式是否有效
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodDirect, PaymentMethodCash:
		return true
	}
	return false
}

// Participant 參與者模型。一位參與者只屬於一個活動；host 身分由
// event.HostID 推導，不另外儲存。
type Participant struct {
	ID         int       `json:"id" db:"id"`
	EventID    int       `json:"event_id" db:"event_id"`
	UserID     int       `json:"user_id" db:"user_id"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	Paid       bool      `json:"paid" db:"paid"`
	ShirtColor *string   `json:"shirtColor,omitempty" db:"shirt_color"`
	JoinedAt   time.Time `json:"joined_at" db:"joined_at"`
}

// IsHost 檢查參與者是否為活動主辦人
func (p *Participant) IsHost(e *Event) bool {
	return p.UserID == e.HostID
}
