package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/app"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/config"
)

func main() {
	log.Println("starting mobile kit feed simulator (JSON → MQTT)")

	if err := config.InitGlobal("location_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunMobileKitSim(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
