package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/rm-hull/godx"

	"github.com/precios-ar/precios-api/internal"
)

// bootstrap initialises shared resources used by both the convert and serve
// commands: environment loading, startup diagnostics, and configuration.
func bootstrap() *internal.Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	godx.GitVersion()
	godx.EnvironmentVars()
	godx.UserInfo()

	return internal.LoadConfig()
}
