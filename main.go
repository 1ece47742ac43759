package main

import (
	"log"

	"github.com/dibyajyoti0750/Ascend-LMS/config"
	"github.com/dibyajyoti0750/Ascend-LMS/database"
	contactRoutes "github.com/dibyajyoti0750/Ascend-LMS/routers/contactRoutes"
	courseRoutes "github.com/dibyajyoti0750/Ascend-LMS/routers/courseRoutes"
	educatorRoutes "github.com/dibyajyoti0750/Ascend-LMS/routers/educatorRoutes"
	userRoutes "github.com/dibyajyoti0750/Ascend-LMS/routers/userRoutes"
	webhookRoutes "github.com/dibyajyoti0750/Ascend-LMS/routers/webhookRoutes"
	"github.com/dibyajyoti0750/Ascend-LMS/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API working")
	})

	courseRoutes.SetupCourseRoutes(app)
	userRoutes.SetupUserRoutes(app)
	educatorRoutes.SetupEducatorRoutes(app)
	webhookRoutes.SetupWebhookRoutes(app)
	contactRoutes.SetupContactRoutes(app)

	utils.InitializePurchaseScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
