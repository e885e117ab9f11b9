package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/config"
	"github.com/siekermantechnology/SnapOSLocationTools/internal/mobilekit"
)

// RunConsole subscribes to the phone location channel and prints each parsed
// message to stdout. Debug aid for watching the feed next to the hub.
func RunConsole() error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Infof("console: connected to broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicLocation, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var m mobilekit.Message
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Warnf("console: unmarshal error: %v", err)
			return
		}

		fmt.Printf("[LOC] lat=%s lon=%s hacc=%s alt=%s vacc=%s\n",
			fmtOpt(m.Latitude),
			fmtOpt(m.Longitude),
			fmtOpt(m.HorizontalAccuracy),
			fmtOpt(m.Altitude),
			fmtOpt(m.VerticalAccuracy),
		)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Infof("console: subscribed to %s", cfg.TopicLocation)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("console: shutting down")
	client.Disconnect(250)
	return nil
}

func fmtOpt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", *v)
}
