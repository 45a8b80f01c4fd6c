package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeUsers struct {
	calls []time.Time
	err   error
	panic bool
}

func (f *fakeUsers) PromoteEligibleOsnova(_ context.Context, now time.Time) (int64, error) {
	if f.panic {
		panic("boom")
	}
	f.calls = append(f.calls, now)
	return 3, f.err
}

func TestPromoteOsnova(t *testing.T) {
	now := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
	users := &fakeUsers{}
	jr := NewJobRunner(users)
	jr.now = func() time.Time { return now }

	jr.RunAll()
	assert.Equal(t, []time.Time{now}, users.calls)

	users.err = errors.New("db down")
	assert.NotPanics(t, jr.PromoteOsnova)
}

func TestRunWithRecovery(t *testing.T) {
	jr := NewJobRunner(&fakeUsers{panic: true})
	assert.NotPanics(t, jr.PromoteOsnova)
}
