package main

import (
	"github.com/festivalmap/festivals/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; FESTIVALS_* variables may come from the environment
	_ = godotenv.Load()

	cli.Execute()
}
