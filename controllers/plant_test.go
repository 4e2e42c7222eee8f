package controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/forripsys/Fytouli/config"
	"github.com/forripsys/Fytouli/models"
)

func TestCreatePlantSeedsSchedules(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/api/plants", bearerFor(t, 1), map[string]interface{}{
		"name":                  "Monstera",
		"species":               "Monstera deliciosa",
		"watering_frequency":    7,
		"fertilizing_frequency": 14,
		"light_requirements":    "medium",
		"humidity":              "high",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d: %s", resp.StatusCode, body)
	}
	var plant models.Plant
	if err := json.Unmarshal(body, &plant); err != nil {
		t.Fatalf("decode plant: %v", err)
	}
	if plant.UserID != 1 || plant.LastWatered.IsZero() {
		t.Fatalf("plant = %+v", plant)
	}

	var schedules []models.Schedule
	if err := config.DB.Where("plant_id = ?", plant.ID).Order("scheduled_date ASC").Find(&schedules).Error; err != nil {
		t.Fatalf("load schedules: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("initial schedules = %d, want 2", len(schedules))
	}
	wantWatering := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	if schedules[0].Type != models.ScheduleTypeWatering ||
		schedules[0].ScheduledDate.Format("2006-01-02") != wantWatering {
		t.Fatalf("first schedule = %+v, want watering on %s", schedules[0], wantWatering)
	}
	if schedules[1].Type != models.ScheduleTypeFertilizing {
		t.Fatalf("second schedule = %+v, want fertilizing", schedules[1])
	}
}

func TestCreatePlantValidation(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{
			"watering_frequency": 7, "fertilizing_frequency": 14,
		}},
		{"zero frequency", map[string]interface{}{
			"name": "Cactus", "watering_frequency": 0, "fertilizing_frequency": 14,
		}},
		{"negative frequency", map[string]interface{}{
			"name": "Cactus", "watering_frequency": 7, "fertilizing_frequency": -3,
		}},
		{"bad light enum", map[string]interface{}{
			"name": "Cactus", "watering_frequency": 7, "fertilizing_frequency": 14,
			"light_requirements": "blinding",
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, "POST", "/api/plants", bearerFor(t, 1), tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", resp.StatusCode, body)
			}
		})
	}
}

func TestWaterPlantFlow(t *testing.T) {
	app := setupApp(t)
	plant := seedTestPlant(t, 1, 5, 30)
	seedTestSchedule(t, 1, plant.ID, models.ScheduleTypeWatering, time.Now().AddDate(0, 0, -1), false)

	resp, body := doJSON(t, app, "POST", fmt.Sprintf("/api/plants/%d/water", plant.ID), bearerFor(t, 1), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("water status = %d: %s", resp.StatusCode, body)
	}
	var updated models.Plant
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decode plant: %v", err)
	}
	if time.Since(updated.LastWatered) > time.Minute {
		t.Fatalf("LastWatered = %v, want now", updated.LastWatered)
	}

	var pending []models.Schedule
	if err := config.DB.Where("plant_id = ? AND type = ? AND completed = ?",
		plant.ID, models.ScheduleTypeWatering, false).Find(&pending).Error; err != nil {
		t.Fatalf("load pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending watering = %d, want exactly 1 rolled-forward reminder", len(pending))
	}
	wantDay := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	if got := pending[0].ScheduledDate.Format("2006-01-02"); got != wantDay {
		t.Fatalf("next reminder on %s, want %s", got, wantDay)
	}

	resp, _ = doJSON(t, app, "POST", "/api/plants/999/water", bearerFor(t, 1), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing plant status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdatePlantFrequencyRollover(t *testing.T) {
	app := setupApp(t)
	plant := seedTestPlant(t, 1, 7, 30)
	now := time.Now()

	pastPending := seedTestSchedule(t, 1, plant.ID, models.ScheduleTypeWatering, now.AddDate(0, 0, -3), false)
	futurePending := seedTestSchedule(t, 1, plant.ID, models.ScheduleTypeWatering, now.AddDate(0, 0, 7), false)

	resp, body := doJSON(t, app, "PUT", fmt.Sprintf("/api/plants/%d", plant.ID), bearerFor(t, 1), map[string]interface{}{
		"watering_frequency": 3,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d: %s", resp.StatusCode, body)
	}

	var schedules []models.Schedule
	if err := config.DB.Where("plant_id = ? AND type = ?", plant.ID, models.ScheduleTypeWatering).
		Order("scheduled_date ASC").Find(&schedules).Error; err != nil {
		t.Fatalf("load schedules: %v", err)
	}
	if len(schedules) != 2 {
		t.Fatalf("schedules = %d, want past survivor plus replacement", len(schedules))
	}
	if schedules[0].ID != pastPending.ID {
		t.Fatal("past-dated pending reminder must survive a frequency edit")
	}
	if schedules[1].ID == futurePending.ID {
		t.Fatal("future pending reminder must be replaced")
	}
	wantDay := now.AddDate(0, 0, 3).Format("2006-01-02")
	if got := schedules[1].ScheduledDate.Format("2006-01-02"); got != wantDay {
		t.Fatalf("replacement on %s, want %s", got, wantDay)
	}

	// A non-frequency edit leaves schedules alone.
	resp, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/plants/%d", plant.ID), bearerFor(t, 1), map[string]interface{}{
		"notes": "loves the morning sun",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("notes update status = %d", resp.StatusCode)
	}
	var after int64
	if err := config.DB.Model(&models.Schedule{}).Where("plant_id = ?", plant.ID).Count(&after).Error; err != nil {
		t.Fatalf("count schedules: %v", err)
	}
	if after != 2 {
		t.Fatalf("schedules = %d after notes edit, want 2", after)
	}

	// Sending the same frequency again is not a change either.
	resp, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/plants/%d", plant.ID), bearerFor(t, 1), map[string]interface{}{
		"watering_frequency": 3,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("same frequency status = %d", resp.StatusCode)
	}
	if err := config.DB.Model(&models.Schedule{}).Where("plant_id = ?", plant.ID).Count(&after).Error; err != nil {
		t.Fatalf("count schedules: %v", err)
	}
	if after != 2 {
		t.Fatalf("schedules = %d after no-op frequency edit, want 2", after)
	}
}

func TestDeletePlantCascades(t *testing.T) {
	app := setupApp(t)
	plant := seedTestPlant(t, 1, 7, 30)
	now := time.Now()
	seedTestSchedule(t, 1, plant.ID, models.ScheduleTypeWatering, now.AddDate(0, 0, 1), false)
	seedTestSchedule(t, 1, plant.ID, models.ScheduleTypeFertilizing, now.AddDate(0, 0, 2), false)
	seedTestSchedule(t, 1, plant.ID, models.ScheduleTypeWatering, now.AddDate(0, 0, -4), true)

	resp, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/plants/%d", plant.ID), bearerFor(t, 2), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "DELETE", fmt.Sprintf("/api/plants/%d", plant.ID), bearerFor(t, 1), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	var remaining int64
	if err := config.DB.Model(&models.Schedule{}).Where("plant_id = ?", plant.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count schedules: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("schedules = %d after cascade, want 0", remaining)
	}
}

func TestGetPlantCareStatus(t *testing.T) {
	app := setupApp(t)
	plant := seedTestPlant(t, 1, 5, 30)
	plant.LastWatered = time.Now().AddDate(0, 0, -9)
	if err := config.DB.Save(plant).Error; err != nil {
		t.Fatalf("backdate plant: %v", err)
	}

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/plants/%d", plant.ID), bearerFor(t, 1), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d: %s", resp.StatusCode, body)
	}
	var payload struct {
		Watering struct {
			DaysSince int  `json:"days_since"`
			NeedsCare bool `json:"needs_care"`
			DaysLeft  int  `json:"days_left"`
		} `json:"watering"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !payload.Watering.NeedsCare || payload.Watering.DaysLeft != 0 {
		t.Fatalf("watering status = %+v, want due with no days left", payload.Watering)
	}

	// The list view carries the same status block per plant.
	resp, body = doJSON(t, app, "GET", "/api/plants", bearerFor(t, 1), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d: %s", resp.StatusCode, body)
	}
	var list []struct {
		Plant struct {
			ID uint `json:"id"`
		} `json:"plant"`
		Watering struct {
			NeedsCare bool `json:"needs_care"`
		} `json:"watering"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Plant.ID != plant.ID {
		t.Fatalf("list = %s, want the seeded plant", body)
	}
	if !list[0].Watering.NeedsCare {
		t.Fatal("list entry missing due watering status")
	}
}
