package service

import (
	"encoding/json"

	"github.com/klantroef/medialink/internal/app/model"
	"github.com/nats-io/nats.go"
)

// ViewPublisher publishes view events to NATS JetStream
type ViewPublisher struct {
	js nats.JetStreamContext
}

// NewViewPublisher creates a new view event publisher
func NewViewPublisher(js nats.JetStreamContext) *ViewPublisher {
	return &ViewPublisher{js: js}
}

// Publish publishes a view event to the stream
func (p *ViewPublisher) Publish(event *model.ViewEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = p.js.Publish(model.ViewStreamSubject, data)
	return err
}
