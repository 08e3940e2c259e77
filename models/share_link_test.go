package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShareLinkValidity(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	cases := []struct {
		name       string
		active     bool
		expiration *time.Time
		state      ShareLinkState
	}{
		{"active never expires", true, nil, ShareLinkActive},
		{"active future expiration", true, &future, ShareLinkActive},
		{"active expires exactly now", true, &now, ShareLinkActive},
		{"active past expiration", true, &past, ShareLinkExpired},
		{"revoked never expires", false, nil, ShareLinkRevoked},
		{"revoked and expired", false, &past, ShareLinkRevoked},
		{"revoked future expiration", false, &future, ShareLinkRevoked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			link := ShareLink{Active: tc.active, ExpirationDate: tc.expiration}
			assert.Equal(t, tc.state, link.State(now))

			want := tc.active && (tc.expiration == nil || !now.After(*tc.expiration))
			assert.Equal(t, want, link.IsValidAt(now))
		})
	}
}
