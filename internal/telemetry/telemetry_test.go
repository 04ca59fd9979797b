package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

// TestStartFinishWithoutProvider verifies spans are safe with the global no-op provider.
func TestStartFinishWithoutProvider(t *testing.T) {
	ctx, span := Start(context.Background(), "test.span", attribute.String("k", "v"))
	if ctx == nil || span == nil {
		t.Fatalf("expected context and span")
	}
	err := errors.New("boom")
	Finish(span, &err)
	Finish(span, nil)
}
