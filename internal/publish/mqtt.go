// Package publish sends assembled meter records to an MQTT broker as JSON,
// one message per record on teleinfo/<meter address>.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"TeleinfoBridge/internal/model"
	"TeleinfoBridge/internal/util"
)

// Publisher pushes each record to <prefix>/<meter address>, QoS 0,
// non-retained. The client reconnects on its own; records decoded while the
// broker is unreachable are dropped with an error log.
type Publisher struct {
	client mqtt.Client
	prefix string
}

// NewPublisher creates the MQTT client and starts connecting to broker in
// the background.
func NewPublisher(broker, clientID, prefix string) *Publisher {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(mqtt.Client) {
			util.Info("[publish] connected to MQTT broker %s", broker)
		}).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			util.Error("[publish] MQTT connection lost: %v", err)
		})

	client := mqtt.NewClient(opts)
	client.Connect()
	return &Publisher{client: client, prefix: prefix}
}

// Topic returns the publication topic for a record.
func Topic(prefix string, rec model.TeleinfoRecord) string {
	return prefix + "/" + rec.Adco
}

// Publish sends one record and waits for the client to hand it off.
func (p *Publisher) Publish(rec model.TeleinfoRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	tok := p.client.Publish(Topic(p.prefix, rec), 0, false, payload)
	tok.Wait()
	return tok.Error()
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
