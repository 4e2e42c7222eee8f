package controllers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/forripsys/Fytouli/care"
	"github.com/forripsys/Fytouli/config"
	"github.com/forripsys/Fytouli/models"
)

/* ---------- Input structs (Plant) ---------- */

// CreatePlantInput carries a new plant. Last-care timestamps are optional
// RFC3339 strings and default to the creation time.
type CreatePlantInput struct {
	Name                 string  `json:"name"`
	Species              string  `json:"species"`
	Location             string  `json:"location"`
	PotSize              string  `json:"pot_size"`
	SoilType             string  `json:"soil_type"`
	LightRequirements    string  `json:"light_requirements"`
	Humidity             string  `json:"humidity"`
	TemperatureMin       float64 `json:"temperature_min"`
	TemperatureMax       float64 `json:"temperature_max"`
	WateringFrequency    int     `json:"watering_frequency"`
	FertilizingFrequency int     `json:"fertilizing_frequency"`
	LastWatered          string  `json:"last_watered"`
	LastFertilized       string  `json:"last_fertilized"`
	Notes                string  `json:"notes"`
	ImageURL             string  `json:"image_url"`
}

// UpdatePlantInput patches a plant; nil fields stay untouched, which lets
// the handler tell an omitted frequency from an unchanged one.
type UpdatePlantInput struct {
	Name                 *string  `json:"name"`
	Species              *string  `json:"species"`
	Location             *string  `json:"location"`
	PotSize              *string  `json:"pot_size"`
	SoilType             *string  `json:"soil_type"`
	LightRequirements    *string  `json:"light_requirements"`
	Humidity             *string  `json:"humidity"`
	TemperatureMin       *float64 `json:"temperature_min"`
	TemperatureMax       *float64 `json:"temperature_max"`
	WateringFrequency    *int     `json:"watering_frequency"`
	FertilizingFrequency *int     `json:"fertilizing_frequency"`
	Notes                *string  `json:"notes"`
	ImageURL             *string  `json:"image_url"`
}

// validCareLevel accepts the light/humidity enum, empty meaning unset.
func validCareLevel(level string) bool {
	switch level {
	case "", "low", "medium", "high":
		return true
	}
	return false
}

// plantWithStatus pairs a plant with its read-time care status for both
// care types.
func plantWithStatus(plant models.Plant, now time.Time) fiber.Map {
	return fiber.Map{
		"plant":       plant,
		"watering":    care.StatusAt(plant.LastWatered, plant.WateringFrequency, now),
		"fertilizing": care.StatusAt(plant.LastFertilized, plant.FertilizingFrequency, now),
	}
}

/* ---------- Handlers ---------- */

// GetPlants returns the caller's plants, newest first, each with its
// care status.
func GetPlants(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var plants []models.Plant
	if err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching plants"})
	}

	now := care.SystemClock()
	out := make([]fiber.Map, 0, len(plants))
	for _, plant := range plants {
		out = append(out, plantWithStatus(plant, now))
	}
	return c.JSON(out)
}

// GetPlant returns one plant with its read-time care status.
func GetPlant(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var plant models.Plant
	if err := config.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&plant).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
	}

	return c.JSON(plantWithStatus(plant, care.SystemClock()))
}

// CreatePlant stores the plant and then seeds its first watering and
// fertilizing reminders. Reminder inserts are best-effort and never fail
// the plant creation; their results go to the log.
func CreatePlant(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var input CreatePlantInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}
	if input.WateringFrequency < 1 || input.FertilizingFrequency < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Care frequencies must be at least 1 day"})
	}
	if !validCareLevel(input.LightRequirements) || !validCareLevel(input.Humidity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Light and humidity must be low, medium or high"})
	}

	now := care.SystemClock()
	plant := models.Plant{
		UserID:               userID,
		Name:                 input.Name,
		Species:              input.Species,
		Location:             input.Location,
		PotSize:              input.PotSize,
		SoilType:             input.SoilType,
		LightRequirements:    input.LightRequirements,
		Humidity:             input.Humidity,
		TemperatureMin:       input.TemperatureMin,
		TemperatureMax:       input.TemperatureMax,
		WateringFrequency:    input.WateringFrequency,
		FertilizingFrequency: input.FertilizingFrequency,
		LastWatered:          now,
		LastFertilized:       now,
		Notes:                input.Notes,
	}
	if input.ImageURL != "" {
		plant.ImageURL = &input.ImageURL
	}
	if input.LastWatered != "" {
		t, err := time.Parse(time.RFC3339, input.LastWatered)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid last_watered format"})
		}
		plant.LastWatered = t
	}
	if input.LastFertilized != "" {
		t, err := time.Parse(time.RFC3339, input.LastFertilized)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid last_fertilized format"})
		}
		plant.LastFertilized = t
	}

	if err := config.DB.Create(&plant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating plant"})
	}

	for _, result := range care.EnsureInitialSchedules(config.DB, &plant, now) {
		log.Printf("plant %d: %s", plant.ID, result)
	}

	return c.Status(fiber.StatusCreated).JSON(plant)
}

// UpdatePlant patches the plant. When a care frequency actually changes
// value, pending reminders of that type dated today or later are replaced
// by a single one at now plus the new frequency.
func UpdatePlant(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var plant models.Plant
	if err := config.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&plant).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
	}

	var input UpdatePlantInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if input.WateringFrequency != nil && *input.WateringFrequency < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Watering frequency must be at least 1 day"})
	}
	if input.FertilizingFrequency != nil && *input.FertilizingFrequency < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Fertilizing frequency must be at least 1 day"})
	}
	if input.LightRequirements != nil && !validCareLevel(*input.LightRequirements) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Light must be low, medium or high"})
	}
	if input.Humidity != nil && !validCareLevel(*input.Humidity) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Humidity must be low, medium or high"})
	}

	wateringChanged := input.WateringFrequency != nil && *input.WateringFrequency != plant.WateringFrequency
	fertilizingChanged := input.FertilizingFrequency != nil && *input.FertilizingFrequency != plant.FertilizingFrequency

	if input.Name != nil {
		plant.Name = *input.Name
	}
	if input.Species != nil {
		plant.Species = *input.Species
	}
	if input.Location != nil {
		plant.Location = *input.Location
	}
	if input.PotSize != nil {
		plant.PotSize = *input.PotSize
	}
	if input.SoilType != nil {
		plant.SoilType = *input.SoilType
	}
	if input.LightRequirements != nil {
		plant.LightRequirements = *input.LightRequirements
	}
	if input.Humidity != nil {
		plant.Humidity = *input.Humidity
	}
	if input.TemperatureMin != nil {
		plant.TemperatureMin = *input.TemperatureMin
	}
	if input.TemperatureMax != nil {
		plant.TemperatureMax = *input.TemperatureMax
	}
	if input.WateringFrequency != nil {
		plant.WateringFrequency = *input.WateringFrequency
	}
	if input.FertilizingFrequency != nil {
		plant.FertilizingFrequency = *input.FertilizingFrequency
	}
	if input.Notes != nil {
		plant.Notes = *input.Notes
	}
	if input.ImageURL != nil {
		if *input.ImageURL == "" {
			plant.ImageURL = nil
		} else {
			plant.ImageURL = input.ImageURL
		}
	}

	if err := config.DB.Save(&plant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating plant"})
	}

	// The plant update is committed; reschedule failures are secondary.
	now := care.SystemClock()
	if wateringChanged {
		if err := care.RescheduleAfterFrequencyChange(config.DB, &plant, models.ScheduleTypeWatering, plant.WateringFrequency, now); err != nil {
			log.Printf("plant %d: watering reschedule failed: %v", plant.ID, err)
		}
	}
	if fertilizingChanged {
		if err := care.RescheduleAfterFrequencyChange(config.DB, &plant, models.ScheduleTypeFertilizing, plant.FertilizingFrequency, now); err != nil {
			log.Printf("plant %d: fertilizing reschedule failed: %v", plant.ID, err)
		}
	}

	return c.JSON(plant)
}

// DeletePlant removes the plant and cascades to all of its reminders.
func DeletePlant(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	plantID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
	}

	if err := care.DeletePlantCascade(config.DB, uint(plantID), userID); err != nil {
		if errors.Is(err, care.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error deleting plant"})
	}

	return c.JSON(fiber.Map{"message": "Plant deleted successfully"})
}

// WaterPlant records a watering action.
func WaterPlant(c *fiber.Ctx) error {
	return performCareAction(c, models.ScheduleTypeWatering)
}

// FertilizePlant records a fertilizing action.
func FertilizePlant(c *fiber.Ctx) error {
	return performCareAction(c, models.ScheduleTypeFertilizing)
}

func performCareAction(c *fiber.Ctx, scheduleType string) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	plantID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid plant id"})
	}

	plant, outcome, err := care.PerformCareAction(config.DB, uint(plantID), userID, scheduleType, care.SystemClock())
	if err != nil {
		if errors.Is(err, care.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error recording care action"})
	}

	log.Printf("plant %d %s action: %s", plant.ID, scheduleType, outcome)
	return c.JSON(plant)
}
