// Copyright (c) 2026 Siekerman Technology
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/config"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/geosource"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/mappin"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/mobilekit"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/oledpanel"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/panel"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/webpanel"
)

// RunHub wires the full pipeline: source adapters → store → panels →
// surfaces, then drives the compact panel from the frame ticker until
// SIGINT/SIGTERM.
func RunHub() error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	store := reading.NewStore()

	// Surfaces. The web hub doubles as the external map surface.
	web := webpanel.NewHub()
	surfaces := []panel.Surface{web}

	if cfg.OLEDEnabled {
		oled, err := oledpanel.Open(cfg.OLEDI2CAddr)
		if err != nil {
			log.Warnf("hub: OLED panel unavailable, continuing without: %v", err)
		} else {
			defer oled.Close()
			surfaces = append(surfaces, oled)
		}
	}
	surface := panel.Multi(surfaces...)

	primaryPins := mappin.New(web, "device")
	secondaryPins := mappin.New(web, "mobilekit")

	compact := panel.NewCompact(store, surface)
	detailed := panel.NewDetailed(store, surface, primaryPins, secondaryPins, cfg.Simulated, cfg.MobileKitEnabled)

	// The floating panel refreshes on data-available notifications, the
	// compact panel on the frame ticker below. Register before any adapter
	// starts delivering.
	store.OnPrimary(detailed.RefreshPrimary)
	store.OnSecondary(detailed.RefreshSecondary)

	// Paint the initial mobile-kit state before the first message.
	detailed.RefreshSecondary()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Primary source: device GPS, or the simulated track in the simulator.
	var provider geosource.PositionProvider
	var headings geosource.HeadingSource
	if cfg.Simulated {
		log.Info("hub: simulated environment, using simulated position feed")
		sim := geosource.NewSim(cfg.SimCenterLat, cfg.SimCenterLon)
		provider, headings = sim, sim
	} else {
		nmeaProv, err := geosource.OpenNMEA(cfg.GPSSerialPort, uint(cfg.GPSBaudRate))
		if err != nil {
			return err
		}
		provider, headings = nmeaProv, nmeaProv
	}

	adapter := geosource.New(provider, store, time.Duration(cfg.PositionPollInterval)*time.Millisecond, cfg.Simulated)
	headings.Subscribe(adapter.HandleHeading)
	go adapter.Run(ctx)

	// Secondary source: skipped entirely in the simulator.
	if cfg.Simulated {
		log.Info("hub: simulated environment, skipping mobile kit session")
	} else {
		mk := mobilekit.New(store, cfg.TopicLocation)
		if err := mk.Connect(cfg.MQTTBroker, cfg.MQTTClientIDHub); err != nil {
			return err
		}
		defer mk.Close()
	}

	go func() {
		if err := web.Serve(cfg.WebServerPort); err != nil {
			log.Errorf("hub: web panel server: %v", err)
		}
	}()

	ticker := time.NewTicker(time.Duration(cfg.FrameTickInterval) * time.Millisecond)
	defer ticker.Stop()

	log.Info("hub: starting frame loop")
	for {
		select {
		case <-ctx.Done():
			log.Info("hub: shutting down")
			return nil
		case <-ticker.C:
			compact.Refresh()
		}
	}
}
