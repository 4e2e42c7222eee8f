package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/forripsys/Fytouli/config"
	"github.com/forripsys/Fytouli/models"
	"github.com/forripsys/Fytouli/routes"
	"github.com/forripsys/Fytouli/utils"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Plant{}, &models.Schedule{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	config.DB = db

	app := fiber.New()
	routes.Setup(app)
	return app
}

func bearerFor(t *testing.T, userID uint) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(userID, "user@example.com", "user")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, data
}

func seedTestPlant(t *testing.T, userID uint, watering, fertilizing int) *models.Plant {
	t.Helper()
	plant := models.Plant{
		UserID:               userID,
		Name:                 "Ficus",
		Species:              "Ficus lyrata",
		Location:             "office",
		WateringFrequency:    watering,
		FertilizingFrequency: fertilizing,
		LastWatered:          time.Now(),
		LastFertilized:       time.Now(),
	}
	if err := config.DB.Create(&plant).Error; err != nil {
		t.Fatalf("seed plant: %v", err)
	}
	return &plant
}

func seedTestSchedule(t *testing.T, userID, plantID uint, scheduleType string, at time.Time, completed bool) *models.Schedule {
	t.Helper()
	s := models.Schedule{
		UserID:        userID,
		PlantID:       plantID,
		Type:          scheduleType,
		ScheduledDate: at,
		Completed:     completed,
	}
	if err := config.DB.Create(&s).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	return &s
}
