package signal

import (
	"testing"
	"time"
)

func TestRoomRateLimiterWindow(t *testing.T) {
	rl := NewRoomRateLimiter(2, 10*time.Second)
	now := time.Unix(1000, 0)
	rl.now = func() time.Time { return now }

	if !rl.Allow("c") || !rl.Allow("c") {
		t.Fatal("first two attempts should pass")
	}
	if rl.Allow("c") {
		t.Fatal("third attempt inside the window should be blocked")
	}
	if !rl.Allow("other") {
		t.Fatal("limits must be per connection")
	}

	now = now.Add(11 * time.Second)
	if !rl.Allow("c") {
		t.Fatal("attempt after the window should pass")
	}
}

func TestRoomRateLimiterForget(t *testing.T) {
	rl := NewRoomRateLimiter(1, time.Minute)
	rl.Allow("c")
	if rl.Allow("c") {
		t.Fatal("second attempt should be blocked")
	}
	rl.Forget("c")
	if !rl.Allow("c") {
		t.Fatal("Forget should reset the history")
	}
}
