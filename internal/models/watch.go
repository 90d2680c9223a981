package models

import "time"

// MonitorRequest starts watching a date for a chat
type MonitorRequest struct {
	ChatID int64  `json:"chat_id" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

// WatchView is the API shape of one chat's watch state
type WatchView struct {
	ChatID          int64      `json:"chat_id"`
	Dates           []string   `json:"dates"`
	Departure       string     `json:"departure"`
	Arrival         string     `json:"arrival"`
	Seats           int        `json:"seats"`
	IntervalMinutes int        `json:"interval_minutes"`
	SummaryMinutes  int        `json:"summary_minutes"`
	LastCheckAt     *time.Time `json:"last_check_at,omitempty"`
	LastSummaryAt   *time.Time `json:"last_summary_at,omitempty"`
}

// StationView is one railway stop
type StationView struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// CheckRequest asks for a one-off availability check
type CheckRequest struct {
	Date      string `json:"date" binding:"required"`
	Departure string `json:"departure,omitempty"`
	Arrival   string `json:"arrival,omitempty"`
	Seats     int    `json:"seats,omitempty"`
}
