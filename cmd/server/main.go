package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/duotext/duotext/internal/logger"
	"github.com/duotext/duotext/internal/server"
)

func main() {
	log := logger.Get()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment as-is")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.NewServer()
	r := srv.SetupRouter()

	log.Infof("starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
