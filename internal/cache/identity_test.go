package cache

import (
	"testing"
	"time"
)

func TestIdentityCacheTTLFor(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      time.Duration
	}{
		{"long_lived_token_clamped_to_cache_ttl", now.Add(24 * time.Hour), identityCacheTTL},
		{"token_expiring_before_cache_ttl", now.Add(90 * time.Second), 90 * time.Second},
		{"already_expired_token", now.Add(-time.Minute), -time.Minute},
		{"expiring_exactly_now", now, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := identityCacheTTLFor(test.expiresAt, now); got != test.want {
				t.Errorf("identityCacheTTLFor = %v, want %v", got, test.want)
			}
		})
	}
}

func TestCachedIdentityExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	entry := cachedIdentity{UserID: "u1", Role: "employee", ExpiresAt: now.Add(time.Minute).Unix()}
	if entry.expired(now) {
		t.Error("entry with future expiry reported expired")
	}
	if !entry.expired(now.Add(2 * time.Minute)) {
		t.Error("entry past its expiry not reported expired")
	}
	if !entry.expired(time.Unix(entry.ExpiresAt, 0)) {
		t.Error("entry at its exact expiry not reported expired")
	}
}
