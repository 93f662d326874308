package bot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"aquadesk/pkg/models"
)

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, msg("stale_order"), failureMessage(models.ErrEphemeralID))
	// A wrapped sentinel must still be recognized.
	wrapped := fmt.Errorf("complete order: %w", models.ErrEphemeralID)
	assert.Equal(t, msg("stale_order"), failureMessage(wrapped))

	assert.Equal(t, msg("action_failed"), failureMessage(errors.New("backend: POST /orders/complete/1: unexpected status 500")))
}

func TestCallbackRefRoundTrip(t *testing.T) {
	cases := []*models.Order{
		{Source: models.SourceBackend, Date: "2026-08-30", ID: 100},
		{Source: models.SourceBackend, Date: "2026-08-30", ID: -1, Ephemeral: true},
		{Source: models.SourceLocal, Date: "2026-08-31", ID: 2},
	}
	for _, o := range cases {
		source, date, id, ok := parseRef(callbackRef(o))
		assert.True(t, ok)
		assert.Equal(t, o.Source, source)
		assert.Equal(t, o.Date, date)
		assert.Equal(t, o.ID, id)
	}

	_, _, _, ok := parseRef("garbage")
	assert.False(t, ok)
}
