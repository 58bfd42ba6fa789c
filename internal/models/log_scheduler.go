package models

import (
	"time"
)

// LogScheduler represents the log_schedulers table, one row per job state change
type LogScheduler struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	RunID         string    `json:"run_id" gorm:"type:varchar(36);index;not null"`
	SchedulerCode string    `json:"scheduler_code" gorm:"type:varchar(64);not null"`
	Message       string    `json:"message"`
	Status        string    `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName sets the insert table name for LogScheduler
func (LogScheduler) TableName() string {
	return "log_schedulers"
}
