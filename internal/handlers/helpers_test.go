package handlers_test

import (
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shrinklab/shrink/internal/clicks"
	"github.com/shrinklab/shrink/internal/redirect"
	"github.com/shrinklab/shrink/internal/shortener"
	"github.com/stretchr/testify/require"
)

// assertStatus checks that err is a Huma status error with the given code.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)

	var statusErr huma.StatusError

	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, status, statusErr.GetStatus())
}

func incrementClicks(*shortener.URL) (redirect.Mutation, error) {
	return redirect.Mutation{IncrementClicks: true}, nil
}

func newClickEvent(urlID int64, referrer string) *clicks.Event {
	return &clicks.Event{
		URLID:     urlID,
		ClickedAt: time.Now(),
		Referrer:  referrer,
	}
}
