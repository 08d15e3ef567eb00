package telemetry

import "testing"

func TestInitRejectsUnknownExporter(t *testing.T) {
	if _, err := Init("atelier", "test", WithExporter("carrier-pigeon")); err == nil {
		t.Error("expected error for unknown exporter")
	}
}

func TestInitOTLPRequiresEndpoint(t *testing.T) {
	if _, err := Init("atelier", "test", WithExporter("otlp")); err == nil {
		t.Error("expected error when otlp endpoint is missing")
	}
}
