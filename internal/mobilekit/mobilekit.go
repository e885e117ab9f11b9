// Package mobilekit bridges the phone companion session to the secondary
// location reading. The session is a one-shot handshake with a single named
// subscription channel; a lost connection is logged and stays lost until
// the process restarts.
package mobilekit

import (
	"encoding/json"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/siekermantechnology/SnapOSLocationTools/internal/reading"
)

// Message is one inbound location payload from the phone bridge. The topic
// key is echoed by the bridge and ignored; all location fields are optional
// and any unknown keys are dropped by the decoder.
type Message struct {
	Topic string `json:"topic"`
	reading.Update
}

// Adapter owns the companion session and applies inbound messages to the
// secondary reading.
type Adapter struct {
	store  *reading.Store
	topic  string
	client mqtt.Client
}

func New(store *reading.Store, topic string) *Adapter {
	return &Adapter{store: store, topic: topic}
}

// Connect performs the session handshake and opens the location channel:
// create the client, register connect/disconnect callbacks, start, resolve
// once connected. No retry, no timeout beyond whatever the transport does
// internally, and no reconnection on disconnect.
func (a *Adapter) Connect(broker, clientID string) error {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetOnConnectHandler(func(mqtt.Client) {
			log.Infof("mobilekit: session connected to %s", broker)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warnf("mobilekit: session lost: %v", err)
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	a.client = client

	token := client.Subscribe(a.topic, 0, func(_ mqtt.Client, msg mqtt.Message) {
		a.handlePayload(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Infof("mobilekit: subscribed to %s", a.topic)
	return nil
}

// handlePayload parses one message and applies it sparsely: only fields
// present in the payload are written, the rest keep their prior values.
// A parse failure leaves the reading untouched; any successful parse, even
// an empty one, triggers a refresh.
func (a *Adapter) handlePayload(payload []byte) {
	var m Message
	if err := json.Unmarshal(payload, &m); err != nil {
		log.Warnf("mobilekit: location payload unmarshal error: %v", err)
		return
	}
	a.store.ApplySecondary(m.Update)
}

// Close tears down the session.
func (a *Adapter) Close() {
	if a.client != nil {
		a.client.Disconnect(250)
	}
}
