package model

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus 活動狀態類型。時間上的「已結束」是推導出來的視圖，不存進狀態。
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

// IsValid 驗證狀態是否有效
func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusActive, EventStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo 檢查是否可以轉換到目標狀態。cancelled 是終態。
func (s EventStatus) CanTransitionTo(target EventStatus) bool {
	transitions := map[EventStatus][]EventStatus{
		EventStatusActive:    {EventStatusCancelled},
		EventStatusCancelled: {},
	}

	allowed, ok := transitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}

// Event 活動模型
type Event struct {
	ID              int       `json:"id" db:"id"`
	EventID         uuid.UUID `json:"event_id" db:"event_id"`
	Title           string    `json:"title" db:"title"`
	Date            time.Time `json:"date" db:"event_date"`
	Time            string    `json:"time" db:"time_range"` // "HH:MM - HH:MM"
	Location        string    `json:"location" db:"location"`
	Latitude        float64   `json:"latitude" db:"latitude"`
	Longitude       float64   `json:"longitude" db:"longitude"`
	NumberOfPlayers int       `json:"numberOfPlayers" db:"number_of_players"`

	IsTeamDistributionEnabled bool              `json:"isTeamDistributionEnabled" db:"is_team_distribution_enabled"`
	TeamDistribution          *TeamDistribution `json:"teamDistribution,omitempty" db:"-"`
	TeamColors                *TeamColors       `json:"teamColors,omitempty" db:"-"`

	Price      float64     `json:"price" db:"price"`
	HostID     int         `json:"hostId" db:"host_id"`
	InviteCode string      `json:"inviteCode" db:"invite_code"`
	Status     EventStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Participants []*Participant `json:"participants,omitempty" db:"-"`
}

// IsCancelled 檢查活動是否已取消（終態，不再允許 join/leave/swap/提醒）
func (e *Event) IsCancelled() bool {
	return e.Status == EventStatusCancelled
}

// Window 取得活動的起訖時間
func (e *Event) Window() (TimeWindow, error) {
	return ParseTimeWindow(e.Date, e.Time)
}

// CreateEventParams 建立活動的參數；容量、分隊與價格在建立時即固定
type CreateEventParams struct {
	Title                     string
	Date                      time.Time
	Time                      string
	Location                  string
	Latitude                  float64
	Longitude                 float64
	NumberOfPlayers           int
	IsTeamDistributionEnabled bool
	TeamDistribution          *TeamDistribution
	TeamColors                *TeamColors
	Price                     float64
	HostID                    int
}
