package main

import (
	"context"
	"log"

	_ "arka/docs"
	"arka/internal/pkg"
)

// @title Arka Web Studio API
// @version 1.0
// @description REST API студии разработки сайтов: заявки, оплата, уведомления

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("App start")

	app, err := pkg.NewApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	app.RunApp()

	log.Println("App terminated")
}
