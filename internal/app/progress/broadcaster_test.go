package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/practicebox/practicebox/internal/app/player"
)

func TestBroadcaster_DeliversSequencedUpdates(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	_, ch := b.Subscribe(4)

	b.Report(player.Snapshot{Phase: player.PhaseCountdown, RemainingSeconds: 3})
	b.Report(player.Snapshot{Phase: player.PhaseCountdown, RemainingSeconds: 2})

	u := <-ch
	assert.Equal(t, uint64(1), u.SequenceNo)
	assert.Equal(t, 3, u.Snapshot.RemainingSeconds)

	u = <-ch
	assert.Equal(t, uint64(2), u.SequenceNo)
	assert.Equal(t, 2, u.Snapshot.RemainingSeconds)
}

func TestBroadcaster_Unsubscribe(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	id, ch := b.Subscribe(1)
	require.Equal(t, 1, b.SubscriberCount())

	b.Unsubscribe(id)
	assert.Equal(t, 0, b.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is harmless
	b.Unsubscribe(id)
}

func TestBroadcaster_DropsWhenSubscriberLags(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	_, ch := b.Subscribe(1)

	// Second report must not block even though the buffer is full
	b.Report(player.Snapshot{RemainingSeconds: 10})
	b.Report(player.Snapshot{RemainingSeconds: 9})

	u := <-ch
	assert.Equal(t, uint64(1), u.SequenceNo)
	assert.Empty(t, ch)
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	_, ch := b.Subscribe(1)

	b.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, b.SubscriberCount())

	// Reports and a second Close after closing are no-ops
	b.Report(player.Snapshot{})
	b.Close()
}
