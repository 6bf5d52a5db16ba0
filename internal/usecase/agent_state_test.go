package usecase

import (
	"testing"

	"github.com/pricelens/backend/internal/domain"
)

func TestNextStateForIntent(t *testing.T) {
	testCases := []struct {
		intent domain.Intent
		want   State
	}{
		{domain.IntentPriceQuery, StatePriceLocal},
		{domain.IntentPriceQueryOnline, StatePriceOnline},
		{domain.IntentChat, StateChat},
		{domain.IntentOther, StateOther},
		{domain.Intent("unknown"), StatePriceLocal},
		{domain.Intent(""), StatePriceLocal},
	}

	for _, tc := range testCases {
		t.Run(string(tc.intent), func(t *testing.T) {
			if got := NextStateForIntent(tc.intent); got != tc.want {
				t.Errorf("NextStateForIntent(%q) = %s, want %s", tc.intent, got, tc.want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if StatePriceOnline.String() != "price_online" {
		t.Errorf("String() = %q", StatePriceOnline.String())
	}
	if State(99).String() != "unknown" {
		t.Errorf("String() = %q, want unknown", State(99).String())
	}
}
