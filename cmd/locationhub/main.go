// Copyright (c) 2026 Siekerman Technology
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/app"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/config"
)

func main() {
	log.Println("starting location hub")

	if err := config.InitGlobal("location_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunHub(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
