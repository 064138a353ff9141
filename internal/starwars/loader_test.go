package starwars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsearch/pkg/stream"
)

func TestLoader_OverlappingRequests(t *testing.T) {
	l := NewLoader()

	l.Begin()
	l.Begin()
	l.End()
	l.End()
	l.Close()

	v, ok := l.signal.Value()
	assert.True(t, ok)
	assert.False(t, v)

	// A completed signal replays nothing.
	got, err := stream.Collect(context.Background(), l.Signal())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoader_Transitions(t *testing.T) {
	l := NewLoader()
	ctx := context.Background()

	updates := make(chan bool, 8)
	sub := stream.Subscribe(ctx, l.Signal(), stream.Observer[bool]{
		Next: func(v bool) { updates <- v },
	})
	defer sub.Unsubscribe()
	require.False(t, <-updates)

	l.Begin()
	l.Begin()
	assert.True(t, <-updates)
	l.End()
	l.End()
	assert.False(t, <-updates)

	select {
	case v := <-updates:
		t.Fatalf("Unexpected extra transition %v", v)
	default:
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Luke", "Tatooine"}, Names([]Record{{Name: "Luke"}, {Name: "Tatooine"}}))
	assert.Empty(t, Names(nil))
}
