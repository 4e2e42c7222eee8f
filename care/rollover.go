package care

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/forripsys/Fytouli/models"
)

// ErrNotFound covers an entity that is absent or owned by someone else.
var ErrNotFound = errors.New("not found")

// actionName maps a schedule type to the verb used in sweep annotations.
func actionName(scheduleType string) string {
	if scheduleType == models.ScheduleTypeFertilizing {
		return "fertilize"
	}
	return "water"
}

// scheduleExistsInDay reports whether any reminder for the plant and type,
// completed or not, is dated inside the calendar day containing date.
func scheduleExistsInDay(db *gorm.DB, userID, plantID uint, scheduleType string, date time.Time) (bool, error) {
	start, end := sameDayRange(date)
	var count int64
	err := db.Model(&models.Schedule{}).
		Where("user_id = ? AND plant_id = ? AND type = ? AND scheduled_date >= ? AND scheduled_date < ?",
			userID, plantID, scheduleType, start, end).
		Count(&count).Error
	return count > 0, err
}

// rollForward inserts a reminder at date unless the day window already
// holds one. Failures end up in the result, never as a returned error;
// the callers treat this step as best-effort.
func rollForward(db *gorm.DB, userID, plantID uint, scheduleType string, date time.Time) ScheduleResult {
	result := ScheduleResult{Type: scheduleType, Date: date}

	exists, err := scheduleExistsInDay(db, userID, plantID, scheduleType, date)
	if err != nil {
		result.Err = err
		return result
	}
	if exists {
		result.Skipped = true
		return result
	}

	reminder := models.Schedule{
		UserID:        userID,
		PlantID:       plantID,
		Type:          scheduleType,
		ScheduledDate: date,
	}
	if err := db.Create(&reminder).Error; err != nil {
		result.Err = err
		return result
	}
	result.Created = true
	return result
}

// EnsureInitialSchedules creates the first watering and fertilizing
// reminders for a freshly created plant, each dated now plus the matching
// frequency. Every insert is best-effort: a failure never rolls back the
// plant, the caller just logs the results.
func EnsureInitialSchedules(db *gorm.DB, plant *models.Plant, now time.Time) []ScheduleResult {
	return []ScheduleResult{
		rollForward(db, plant.UserID, plant.ID, models.ScheduleTypeWatering, now.AddDate(0, 0, plant.WateringFrequency)),
		rollForward(db, plant.UserID, plant.ID, models.ScheduleTypeFertilizing, now.AddDate(0, 0, plant.FertilizingFrequency)),
	}
}

// PerformCareAction records a water or fertilize action on the plant:
// every pending reminder of the type is swept complete with an annotation,
// the plant's last-care timestamp moves to now, and the next reminder is
// rolled forward unless its day window is already covered. Repeating the
// action immediately closes the reminder the first call created and the
// window check then skips the insert, so the set of reminders stays at one.
func PerformCareAction(db *gorm.DB, plantID, userID uint, scheduleType string, now time.Time) (*models.Plant, ActionOutcome, error) {
	var outcome ActionOutcome

	var plant models.Plant
	if err := db.Where("id = ? AND user_id = ?", plantID, userID).First(&plant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, outcome, ErrNotFound
		}
		return nil, outcome, err
	}

	sweep := db.Model(&models.Schedule{}).
		Where("user_id = ? AND plant_id = ? AND type = ? AND completed = ?", userID, plant.ID, scheduleType, false).
		Updates(map[string]interface{}{
			"completed":      true,
			"completed_date": now,
			"notes":          "Completed via " + actionName(scheduleType) + " action",
		})
	if sweep.Error != nil {
		return nil, outcome, sweep.Error
	}
	outcome.Closed = sweep.RowsAffected

	frequency := plant.WateringFrequency
	if scheduleType == models.ScheduleTypeFertilizing {
		frequency = plant.FertilizingFrequency
		plant.LastFertilized = now
	} else {
		plant.LastWatered = now
	}
	if err := db.Save(&plant).Error; err != nil {
		return nil, outcome, err
	}

	outcome.Next = rollForward(db, userID, plant.ID, scheduleType, now.AddDate(0, 0, frequency))
	return &plant, outcome, nil
}

// RescheduleAfterFrequencyChange drops pending reminders of the type dated
// today or later and inserts the replacement at now plus the new frequency.
// Past-dated pending reminders stay, and no duplicate window applies here;
// both quirks are long-standing behavior kept on purpose.
func RescheduleAfterFrequencyChange(db *gorm.DB, plant *models.Plant, scheduleType string, frequency int, now time.Time) error {
	startOfToday, _ := sameDayRange(now)
	if err := db.
		Where("user_id = ? AND plant_id = ? AND type = ? AND completed = ? AND scheduled_date >= ?",
			plant.UserID, plant.ID, scheduleType, false, startOfToday).
		Delete(&models.Schedule{}).Error; err != nil {
		return err
	}

	replacement := models.Schedule{
		UserID:        plant.UserID,
		PlantID:       plant.ID,
		Type:          scheduleType,
		ScheduledDate: now.AddDate(0, 0, frequency),
	}
	return db.Create(&replacement).Error
}

// HasOverlappingSchedule reports whether a pending reminder of the same
// plant and type already sits within one day of the requested date. Used
// only by direct schedule creation.
func HasOverlappingSchedule(db *gorm.DB, userID, plantID uint, scheduleType string, date time.Time) (bool, error) {
	lo, hi := overlapRange(date)
	var count int64
	err := db.Model(&models.Schedule{}).
		Where("user_id = ? AND plant_id = ? AND type = ? AND completed = ? AND scheduled_date >= ? AND scheduled_date <= ?",
			userID, plantID, scheduleType, false, lo, hi).
		Count(&count).Error
	return count > 0, err
}

// DeletePlantCascade removes the plant and then every reminder that
// references it, completed or not.
func DeletePlantCascade(db *gorm.DB, plantID, userID uint) error {
	res := db.Where("id = ? AND user_id = ?", plantID, userID).Delete(&models.Plant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return db.Where("user_id = ? AND plant_id = ?", userID, plantID).Delete(&models.Schedule{}).Error
}

// CompleteSchedule marks one reminder done and bumps the plant's matching
// last-care timestamp. Unlike the water/fertilize actions it does not roll
// a next reminder forward. When notes is empty the existing notes stay.
func CompleteSchedule(db *gorm.DB, scheduleID, userID uint, notes string, now time.Time) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := db.Where("id = ? AND user_id = ?", scheduleID, userID).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	schedule.Completed = true
	schedule.CompletedDate = &now
	if notes != "" {
		schedule.Notes = notes
	}
	if err := db.Save(&schedule).Error; err != nil {
		return nil, err
	}

	// Secondary write: the reminder is already committed, so a failure
	// here is logged rather than surfaced.
	var plant models.Plant
	if err := db.Where("id = ? AND user_id = ?", schedule.PlantID, userID).First(&plant).Error; err == nil {
		if schedule.Type == models.ScheduleTypeFertilizing {
			plant.LastFertilized = now
		} else {
			plant.LastWatered = now
		}
		if err := db.Save(&plant).Error; err != nil {
			log.Printf("complete schedule %d: plant %d timestamp update failed: %v", schedule.ID, plant.ID, err)
		}
	}

	return &schedule, nil
}
