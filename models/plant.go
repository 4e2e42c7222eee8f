package models

import "time"

// Light and humidity requirements are stored as plain strings:
// "low" | "medium" | "high" (empty means unspecified).
type Plant struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	Name     string `gorm:"size:200;not null" json:"name"`
	Species  string `gorm:"size:200" json:"species"`
	Location string `gorm:"size:200" json:"location"`
	PotSize  string `gorm:"size:50" json:"pot_size"`
	SoilType string `gorm:"size:100" json:"soil_type"`

	LightRequirements string  `gorm:"size:20" json:"light_requirements"`
	Humidity          string  `gorm:"size:20" json:"humidity"`
	TemperatureMin    float64 `json:"temperature_min"`
	TemperatureMax    float64 `json:"temperature_max"`

	// Days between care actions, always >= 1.
	WateringFrequency    int `gorm:"not null" json:"watering_frequency"`
	FertilizingFrequency int `gorm:"not null" json:"fertilizing_frequency"`

	LastWatered    time.Time `json:"last_watered"`
	LastFertilized time.Time `json:"last_fertilized"`

	Notes    string  `gorm:"size:1000" json:"notes"`
	ImageURL *string `gorm:"size:500" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
