package routes

import (
	"github.com/forripsys/Fytouli/controllers"
	"github.com/forripsys/Fytouli/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	// 1. HEALTH
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "message": "Fytouli API is running"})
	})

	// 2. AUTH
	auth := api.Group("/auth")
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Get("/activate/:link", controllers.Activate)
	auth.Post("/refresh", controllers.Refresh)
	auth.Post("/logout", controllers.Logout)

	// 3. PLANTS
	plants := api.Group("/plants", middleware.JWTProtected())
	plants.Get("/", controllers.GetPlants)
	plants.Post("/", controllers.CreatePlant)
	plants.Get("/:id", controllers.GetPlant)
	plants.Put("/:id", controllers.UpdatePlant)
	plants.Delete("/:id", controllers.DeletePlant)
	plants.Post("/:id/water", controllers.WaterPlant)
	plants.Post("/:id/fertilize", controllers.FertilizePlant)

	// 4. SCHEDULES
	schedules := api.Group("/schedules", middleware.JWTProtected())
	schedules.Get("/", controllers.GetSchedules)
	schedules.Get("/upcoming", controllers.GetUpcomingSchedules)
	schedules.Get("/overdue", controllers.GetOverdueSchedules)
	schedules.Get("/range", controllers.GetSchedulesByRange)
	schedules.Get("/plant/:plantId", controllers.GetPlantSchedules)
	schedules.Post("/", controllers.CreateSchedule)
	schedules.Put("/:id/complete", controllers.CompleteSchedule)
	schedules.Put("/:id", controllers.UpdateSchedule)
	schedules.Delete("/:id", controllers.DeleteSchedule)
}
