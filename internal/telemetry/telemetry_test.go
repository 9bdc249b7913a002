package telemetry

import (
	"context"
	"testing"
)

func TestTracerWithoutSetup(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "test.span")
	defer span.End()
	if span == nil {
		t.Fatal("Tracer().Start() returned nil span")
	}
}

func TestNoopTracerDoesNotRecord(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "test.span")
	defer span.End()
	if span.IsRecording() {
		t.Error("noop span is recording")
	}
}

func TestMeterWithoutSetup(t *testing.T) {
	counter, err := Meter("test").Int64Counter("test.count")
	if err != nil {
		t.Fatalf("Int64Counter() error = %v", err)
	}
	counter.Add(context.Background(), 1)
}
