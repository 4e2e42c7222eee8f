package models

import "time"

const (
	ScheduleTypeWatering    = "watering"
	ScheduleTypeFertilizing = "fertilizing"
)

// Schedule is a reminder record for one care action on one plant.
// PlantID is a weak reference: the plant's display fields are resolved at
// read time, and deleting a plant removes its schedules.
type Schedule struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"index;not null" json:"user_id"`
	PlantID uint `gorm:"index:idx_schedules_plant_date;not null" json:"plant_id"`

	Type          string    `gorm:"size:20;not null" json:"type"` // watering | fertilizing
	ScheduledDate time.Time `gorm:"index:idx_schedules_plant_date;index:idx_schedules_completed_date" json:"scheduled_date"`

	Completed     bool       `gorm:"default:false;index:idx_schedules_completed_date" json:"completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Notes         string     `gorm:"size:500" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidScheduleType reports whether s is one of the two care types.
func ValidScheduleType(s string) bool {
	return s == ScheduleTypeWatering || s == ScheduleTypeFertilizing
}
