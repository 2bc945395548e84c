package publishers

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
)

func TestGCPPubSubPublisherPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	defer os.Unsetenv("PUBSUB_EMULATOR_HOST")
	os.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := client.CreateTopic(ctx, "digest-issues"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	pub, err := newGCPPubSubSender(ctx, "gtopic", &GCPQueueConfig{
		ProjectID: "test-project",
		Topic:     "digest-issues",
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubSender: %v", err)
	}

	err = pub.Publish(ctx, Event{Date: "2026-08-30", TotalItems: 3})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
}
