package shutdown

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerWakesAllReceivers(t *testing.T) {
	sd := New()
	assert.False(t, sd.Triggered())

	const receivers = 5
	var wg sync.WaitGroup
	wg.Add(receivers)
	for i := 0; i < receivers; i++ {
		go func() {
			defer wg.Done()
			<-sd.Done()
		}()
	}

	sd.Trigger()
	wg.Wait()
	assert.True(t, sd.Triggered())
}

func TestTriggerIsIdempotent(t *testing.T) {
	sd := New()
	sd.Trigger()
	sd.Trigger()
	assert.True(t, sd.Triggered())
}

func TestTrackerWaitsForAllTokens(t *testing.T) {
	var tracker Tracker
	first := tracker.Token()
	second := tracker.Token()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.Error(t, tracker.Wait(ctx))

	first.Release()
	second.Release()

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	require.NoError(t, tracker.Wait(ctx2))
}

func TestTokenReleaseIsIdempotent(t *testing.T) {
	var tracker Tracker
	token := tracker.Token()
	token.Release()
	token.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tracker.Wait(ctx))
}
