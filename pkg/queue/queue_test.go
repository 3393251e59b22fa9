package queue_test

import (
	"testing"

	"github.com/grupovilla/gestprocesos/pkg/queue"
)

func TestWatermillMessageRoundTrip(t *testing.T) {
	payload := queue.ProcesoCreatedPayload{ProcesoID: 7, ClienteID: 3, EditorID: 2}

	msg, err := queue.NewWatermillMessage(queue.TopicProcesoCreated, payload,
		queue.WithProducer("gestprocesos"), queue.WithTraceID("abc123"))
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	if msg.Metadata.Get("topic") != queue.TopicProcesoCreated {
		t.Errorf("expected topic mirrored into metadata, got %q", msg.Metadata.Get("topic"))
	}

	if msg.Metadata.Get("producer") != "gestprocesos" || msg.Metadata.Get("trace_id") != "abc123" {
		t.Errorf("expected producer and trace_id in metadata, got %v", msg.Metadata)
	}

	env, err := queue.ParseProcesoCreated(msg)
	if err != nil {
		t.Fatalf("parse message: %v", err)
	}

	if env.Payload != payload {
		t.Errorf("payload round trip mismatch: %+v", env.Payload)
	}

	if env.Header.Topic != queue.TopicProcesoCreated || env.Header.Version != queue.PayloadVersionV1 {
		t.Errorf("unexpected header %+v", env.Header)
	}

	if env.Header.OccurredAt.IsZero() {
		t.Error("expected occurred_at stamped")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	msg, err := queue.NewWatermillMessage(queue.TopicProcesoVencimiento, queue.ProcesoVencimientoPayload{
		ProcesoID: 1, FechaFinal: "2026-04-15", DiasParaVencer: 3,
	})
	if err != nil {
		t.Fatalf("build message: %v", err)
	}

	msg.Payload = []byte("{not json")

	if _, err := queue.ParseProcesoVencimiento(msg); err == nil {
		t.Error("expected error for malformed payload")
	}
}
