package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestLoadRegistryAllTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.us-east-1.amazonaws.com/123/digest
      region: us-east-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:us-east-1:123:digest
      region: us-east-1
  - id: gtopic
    type: gcppubsub
    gcppubsub:
      project_id: openclaw-prod
      topic: digest-issues
  - id: email
    type: buttondown
    buttondown: {}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 4 {
		t.Fatalf("expected 4 publishers, got %d", len(reg.All()))
	}

	email, ok := reg.ByID("email")
	if !ok {
		t.Fatalf("email publisher missing")
	}
	if email.Buttondown.APIKeyEnv != "BUTTONDOWN_API_KEY" {
		t.Fatalf("APIKeyEnv default = %q", email.Buttondown.APIKeyEnv)
	}
	if email.Buttondown.TimeoutSeconds != buttondownDefaultTimeoutSeconds {
		t.Fatalf("timeout default = %d", email.Buttondown.TimeoutSeconds)
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: hook
    type: http
    http:
      url: https://example.com
  - id: hook
    type: http
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  PublisherConfig
	}{
		{"missing http block", PublisherConfig{ID: "h1", Type: TypeHTTP}},
		{"missing sns arn", PublisherConfig{ID: "s1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}}},
		{"missing sqs region", PublisherConfig{ID: "q1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://q"}}},
		{"missing gcp topic", PublisherConfig{ID: "g1", Type: TypeGCPPubSub, GCP: &GCPQueueConfig{ProjectID: "p"}}},
		{"missing buttondown block", PublisherConfig{ID: "b1", Type: TypeButtondown}},
		{"missing id", PublisherConfig{Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://x"}}},
	}
	for _, tc := range cases {
		if err := validatePublisherConfig(tc.cfg); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
