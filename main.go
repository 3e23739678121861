package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/habitd/habitd/config"
	"github.com/habitd/habitd/models"
	"github.com/habitd/habitd/routes"
	"github.com/habitd/habitd/store"
	"github.com/habitd/habitd/utils"
)

func main() {
	mintOwner := flag.Uint("mint-token", 0, "print a development bearer token for the given owner id and exit")
	flag.Parse()

	cfg := config.Load()

	// Tokens normally come from the identity service; this shortcut covers
	// local development and smoke tests.
	if *mintOwner != 0 {
		token, err := utils.GenerateToken(uint(*mintOwner), 24*time.Hour)
		if err != nil {
			log.Fatalf("mint token: %v", err)
		}
		fmt.Println(token)
		return
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg.Log); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Habit{}, &models.HabitEvent{})

	r := routes.SetupRouter(store.NewGormStore(db))

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.App.Port)
	if err := utils.GraceServer(":"+cfg.App.Port, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
