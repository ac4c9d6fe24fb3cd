package services_test

import (
	"context"
	"testing"

	"reelmate/internal/services"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithUserID(ctx, "user-1")
	ctx = services.WithBatchID(ctx, "batch-1")
	ctx = services.WithRequestID(ctx, "req-1")

	if got, ok := services.UserIDFromContext(ctx); !ok || got != "user-1" {
		t.Fatalf("UserIDFromContext = %q, %v", got, ok)
	}
	if got, ok := services.BatchIDFromContext(ctx); !ok || got != "batch-1" {
		t.Fatalf("BatchIDFromContext = %q, %v", got, ok)
	}
	if got, ok := services.RequestIDFromContext(ctx); !ok || got != "req-1" {
		t.Fatalf("RequestIDFromContext = %q, %v", got, ok)
	}
}

func TestContextEmptyValuesIgnored(t *testing.T) {
	ctx := services.WithUserID(context.Background(), "")
	if _, ok := services.UserIDFromContext(ctx); ok {
		t.Fatal("empty user id should not annotate context")
	}
}
