package dbpool

import (
	"context"
	"testing"
	"time"
)

func TestOptionsWithDefaults(t *testing.T) {
	got := Options{}.withDefaults()
	if got != DefaultOptions() {
		t.Errorf("zero options = %+v, want %+v", got, DefaultOptions())
	}

	custom := Options{MaxConns: 10, StatementTimeout: time.Second, ApplicationName: "migrate"}
	if got := custom.withDefaults(); got != custom {
		t.Errorf("custom options changed: %+v", got)
	}
}

func TestNewPool_BadURL(t *testing.T) {
	if _, err := NewPool(context.Background(), "://not a url", Options{}); err == nil {
		t.Fatal("expected parse error")
	}
}
