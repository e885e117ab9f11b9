package app

import (
	"encoding/json"
	"math"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/config"
)

// RunMobileKitSim publishes synthetic phone-relayed location messages to the
// broker so the hub's secondary adapter can be exercised without a paired
// phone. Every fourth message is a sparse altitude-only payload to cover the
// partial-update path.
func RunMobileKitSim() error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDSim)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Infof("mobilekit-sim: connected to broker at %s", cfg.MQTTBroker)

	baseLat, baseLon := cfg.SimCenterLat, cfg.SimCenterLon
	if baseLat == 0 && baseLon == 0 {
		baseLat, baseLon = 52.2175, 5.1696
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	n := 0
	for range ticker.C {
		n++
		msg := map[string]interface{}{"topic": cfg.TopicLocation}

		if n%4 == 0 {
			msg["altitude"] = 15 + 3*math.Sin(float64(n)/5)
		} else {
			drift := float64(n) * 0.00002
			msg["latitude"] = baseLat + drift
			msg["longitude"] = baseLon + drift/2
			msg["horizontal_accuracy"] = 8 + 2*math.Cos(float64(n)/3)
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			log.Errorf("mobilekit-sim: marshal error: %v", err)
			continue
		}

		token := client.Publish(cfg.TopicLocation, 0, false, payload)
		token.Wait()
		if token.Error() != nil {
			log.Errorf("mobilekit-sim: publish error: %v", token.Error())
			continue
		}
		log.Debugf("mobilekit-sim: published %s", payload)
	}
	return nil
}
