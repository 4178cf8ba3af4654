package api

import (
	"testing"
	"time"
)

// 键格式写进了 Redis，改动会让线上计数器失效，这里钉死格式。
func TestRateLimitKeyFormats(t *testing.T) {
	at := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	if got, want := loginRateKey("10.0.0.1", "demo", at), "rate:login:10.0.0.1:demo:2026083114"; got != want {
		t.Fatalf("loginRateKey = %q, want %q", got, want)
	}
	if got, want := uploadRateKey(7, at), "rate:resume-upload:7:20260831"; got != want {
		t.Fatalf("uploadRateKey = %q, want %q", got, want)
	}
	if got, want := loginLockKey("demo"), "lock:login:demo"; got != want {
		t.Fatalf("loginLockKey = %q, want %q", got, want)
	}
	if got, want := loginFailKey("demo"), "lock:login:fail:demo"; got != want {
		t.Fatalf("loginFailKey = %q, want %q", got, want)
	}
}
