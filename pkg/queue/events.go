package queue

import "github.com/ThreeDotsLabs/watermill/message"

// PublishProcesoCreated publishes gp.proceso.created.
func PublishProcesoCreated(pub message.Publisher, payload ProcesoCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicProcesoCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicProcesoCreated, msg)
}

// ParseProcesoCreated decodes a gp.proceso.created message.
func ParseProcesoCreated(msg *message.Message) (Message[ProcesoCreatedPayload], error) {
	return ParseWatermillMessage[ProcesoCreatedPayload](msg)
}

// PublishProcesoVencimiento publishes gp.proceso.vencimiento.
func PublishProcesoVencimiento(pub message.Publisher, payload ProcesoVencimientoPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicProcesoVencimiento, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicProcesoVencimiento, msg)
}

// ParseProcesoVencimiento decodes a gp.proceso.vencimiento message.
func ParseProcesoVencimiento(msg *message.Message) (Message[ProcesoVencimientoPayload], error) {
	return ParseWatermillMessage[ProcesoVencimientoPayload](msg)
}
