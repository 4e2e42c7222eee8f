package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/forripsys/Fytouli/config"
	"github.com/forripsys/Fytouli/routes"
)

func main() {
	config.LoadEnv()
	config.ConnectDB()

	app := fiber.New()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	routes.Setup(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Printf("server running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
