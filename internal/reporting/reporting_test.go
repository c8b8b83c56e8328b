package reporting

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Belphemur/ToshoSubtitles/internal/config"

	"github.com/getsentry/sentry-go"
)

func TestInit_WithoutDSN(t *testing.T) {
	active, err := Init(&config.Config{}, "test")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if active {
		t.Error("Expected reporting to stay disabled without a DSN")
	}
}

func TestCaptureError_Disabled(t *testing.T) {
	enabled.Store(false)
	// Must not panic or block
	CaptureError(errors.New("boom"), map[string]string{"episode": "Ep 1"})
	Flush(10 * time.Millisecond)
}

func TestCaptureError_SendsTaggedEvent(t *testing.T) {
	var (
		mu     sync.Mutex
		events []*sentry.Event
	)

	err := initClient(sentry.ClientOptions{
		Dsn: "https://public@example.com/1",
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			events = append(events, event)
			mu.Unlock()
			return nil // drop instead of sending
		},
	})
	if err != nil {
		t.Fatalf("initClient failed: %v", err)
	}
	t.Cleanup(func() { enabled.Store(false) })

	if !Enabled() {
		t.Fatal("Expected reporting to be enabled")
	}

	CaptureError(errors.New("episode page returned 503"), map[string]string{"phase": "fetch", "episode": "Ep 2"})
	CaptureError(nil, map[string]string{"phase": "fetch"})

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 1 {
		t.Fatalf("Expected 1 captured event, got %d", len(events))
	}
	if events[0].Tags["phase"] != "fetch" || events[0].Tags["episode"] != "Ep 2" {
		t.Errorf("Expected tags to be attached, got %v", events[0].Tags)
	}
}
