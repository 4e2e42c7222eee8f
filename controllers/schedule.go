package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/forripsys/Fytouli/care"
	"github.com/forripsys/Fytouli/config"
	"github.com/forripsys/Fytouli/models"
)

/* ---------- Input structs (Schedule) ---------- */

type CreateScheduleInput struct {
	PlantID       uint   `json:"plant_id"`
	Type          string `json:"type"`
	ScheduledDate string `json:"scheduled_date"`
	Notes         string `json:"notes"`
}

type UpdateScheduleInput struct {
	Type          *string `json:"type"`
	ScheduledDate *string `json:"scheduled_date"`
	Notes         *string `json:"notes"`
}

type CompleteScheduleInput struct {
	Notes string `json:"notes"`
}

/* ---------- Response shaping ---------- */

// plantRef is the display slice of a plant attached to schedule responses.
type plantRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Location string `json:"location,omitempty"`
}

type scheduleView struct {
	models.Schedule
	Plant *plantRef `json:"plant,omitempty"`
}

// attachPlantRefs resolves each schedule's weak plant reference into
// display fields, scoped to the owner. Dangling references yield nil.
func attachPlantRefs(userID uint, schedules []models.Schedule) ([]scheduleView, error) {
	ids := make([]uint, 0, len(schedules))
	seen := make(map[uint]bool)
	for _, s := range schedules {
		if !seen[s.PlantID] {
			seen[s.PlantID] = true
			ids = append(ids, s.PlantID)
		}
	}

	refs := make(map[uint]*plantRef)
	if len(ids) > 0 {
		var plants []models.Plant
		if err := config.DB.Where("user_id = ? AND id IN ?", userID, ids).Find(&plants).Error; err != nil {
			return nil, err
		}
		for _, p := range plants {
			refs[p.ID] = &plantRef{ID: p.ID, Name: p.Name, Species: p.Species, Location: p.Location}
		}
	}

	views := make([]scheduleView, 0, len(schedules))
	for _, s := range schedules {
		views = append(views, scheduleView{Schedule: s, Plant: refs[s.PlantID]})
	}
	return views, nil
}

// parseDateParam accepts RFC3339 or a bare YYYY-MM-DD date.
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

/* ---------- Handlers ---------- */

// GetSchedules returns all of the caller's schedules, soonest first.
func GetSchedules(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var schedules []models.Schedule
	if err := config.DB.
		Where("user_id = ?", userID).
		Order("scheduled_date ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching schedules"})
	}

	views, err := attachPlantRefs(userID, schedules)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching schedules"})
	}
	return c.JSON(views)
}

// GetPlantSchedules returns the schedules of a single plant.
func GetPlantSchedules(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var schedules []models.Schedule
	if err := config.DB.
		Where("user_id = ? AND plant_id = ?", userID, c.Params("plantId")).
		Order("scheduled_date ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching plant schedules"})
	}

	views, err := attachPlantRefs(userID, schedules)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching plant schedules"})
	}
	return c.JSON(views)
}

// GetUpcomingSchedules returns pending schedules due within seven days.
func GetUpcomingSchedules(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	horizon := care.SystemClock().AddDate(0, 0, 7)
	var schedules []models.Schedule
	if err := config.DB.
		Where("user_id = ? AND completed = ? AND scheduled_date <= ?", userID, false, horizon).
		Order("scheduled_date ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching upcoming schedules"})
	}

	views, err := attachPlantRefs(userID, schedules)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching upcoming schedules"})
	}
	return c.JSON(views)
}

// GetOverdueSchedules returns pending schedules whose date has passed.
func GetOverdueSchedules(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var schedules []models.Schedule
	if err := config.DB.
		Where("user_id = ? AND completed = ? AND scheduled_date < ?", userID, false, care.SystemClock()).
		Order("scheduled_date ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching overdue schedules"})
	}

	views, err := attachPlantRefs(userID, schedules)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching overdue schedules"})
	}
	return c.JSON(views)
}

// GetSchedulesByRange returns schedules of any completion state with
// scheduled_date inside the inclusive [start, end] query bounds.
func GetSchedulesByRange(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	startParam := c.Query("start")
	endParam := c.Query("end")
	if startParam == "" || endParam == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start and end dates are required"})
	}
	start, err := parseDateParam(startParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date"})
	}
	end, err := parseDateParam(endParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date"})
	}

	var schedules []models.Schedule
	if err := config.DB.
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date <= ?", userID, start, end).
		Order("scheduled_date ASC").
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching schedules by date range"})
	}

	views, err := attachPlantRefs(userID, schedules)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error fetching schedules by date range"})
	}
	return c.JSON(views)
}

// CreateSchedule inserts a reminder unless a pending one of the same plant
// and type already sits within a day of the requested date.
func CreateSchedule(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var input CreateScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if !models.ValidScheduleType(input.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type must be watering or fertilizing"})
	}
	scheduledDate, err := parseDateParam(input.ScheduledDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid scheduled_date"})
	}

	var plant models.Plant
	if err := config.DB.Where("id = ? AND user_id = ?", input.PlantID, userID).First(&plant).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plant not found"})
	}

	overlap, err := care.HasOverlappingSchedule(config.DB, userID, input.PlantID, input.Type, scheduledDate)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating schedule"})
	}
	if overlap {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "A similar schedule already exists for this time period"})
	}

	schedule := models.Schedule{
		UserID:        userID,
		PlantID:       input.PlantID,
		Type:          input.Type,
		ScheduledDate: scheduledDate,
		Notes:         input.Notes,
	}
	if err := config.DB.Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error creating schedule"})
	}

	return c.Status(fiber.StatusCreated).JSON(scheduleView{
		Schedule: schedule,
		Plant:    &plantRef{ID: plant.ID, Name: plant.Name, Species: plant.Species},
	})
}

// CompleteSchedule marks a reminder done and bumps the plant's matching
// last-care timestamp. No follow-up reminder is created here; only the
// water/fertilize actions roll forward.
func CompleteSchedule(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	scheduleID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid schedule id"})
	}

	var input CompleteScheduleInput
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	schedule, err := care.CompleteSchedule(config.DB, uint(scheduleID), userID, input.Notes, care.SystemClock())
	if err != nil {
		if errors.Is(err, care.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error completing schedule"})
	}

	return c.JSON(schedule)
}

// UpdateSchedule patches a reminder's type, date or notes.
func UpdateSchedule(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	var schedule models.Schedule
	if err := config.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).First(&schedule).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	var input UpdateScheduleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if input.Type != nil {
		if !models.ValidScheduleType(*input.Type) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type must be watering or fertilizing"})
		}
		schedule.Type = *input.Type
	}
	if input.ScheduledDate != nil {
		t, err := parseDateParam(*input.ScheduledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid scheduled_date"})
		}
		schedule.ScheduledDate = t
	}
	if input.Notes != nil {
		schedule.Notes = *input.Notes
	}

	if err := config.DB.Save(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating schedule"})
	}

	views, err := attachPlantRefs(userID, []models.Schedule{schedule})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error updating schedule"})
	}
	return c.JSON(views[0])
}

// DeleteSchedule removes one reminder if the caller owns it.
func DeleteSchedule(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No JWT claims"})
	}
	userID := uint(claims["user_id"].(float64))

	res := config.DB.Where("id = ? AND user_id = ?", c.Params("id"), userID).Delete(&models.Schedule{})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Error deleting schedule"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Schedule not found"})
	}

	return c.JSON(fiber.Map{"message": "Schedule deleted successfully"})
}
