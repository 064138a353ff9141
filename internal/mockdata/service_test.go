package mockdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsearch/internal/logger"
	"starsearch/internal/starwars"
	"starsearch/pkg/stream"
)

func newTestService() *Service {
	return New(Options{
		SearchLatency:     5 * time.Millisecond,
		CharactersLatency: 20 * time.Millisecond,
		PlanetsLatency:    10 * time.Millisecond,
	}, logger.Discard())
}

func TestSearchCharacters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := map[string]struct {
		term string
		want []string
	}{
		"case-insensitive match": {term: "SKYWALKER", want: []string{"Luke Skywalker", "Anakin Skywalker"}},
		"substring":              {term: "vader", want: []string{"Darth Vader"}},
		"no match":               {term: "jar jar", want: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := stream.Collect(ctx, svc.SearchCharacters(tt.term))
			require.NoError(t, err)
			require.Len(t, got, 1, "a lookup emits exactly one list")
			assert.Equal(t, tt.want, starwars.Names(got[0]))
		})
	}
}

func TestCharactersAndPlanets(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	chars, err := stream.Collect(ctx, svc.Characters())
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Luke Skywalker", chars[0][0].Name)
	assert.Len(t, chars[0], len(characters))

	pls, err := stream.Collect(ctx, svc.Planets())
	require.NoError(t, err)
	require.Len(t, pls, 1)
	assert.Equal(t, "Tatooine", pls[0][0].Name)
}

func TestFetchHonorsCancellation(t *testing.T) {
	svc := New(Options{CharactersLatency: time.Hour}, logger.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := stream.Collect(ctx, svc.Characters())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoadersTrackRequests(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	updates := make(chan bool, 8)
	sub := stream.Subscribe(ctx, svc.PlanetLoader(), stream.Observer[bool]{
		Next: func(v bool) { updates <- v },
	})
	defer sub.Unsubscribe()
	assert.False(t, <-updates, "loader starts at false")

	_, err := stream.Collect(ctx, svc.Planets())
	require.NoError(t, err)

	assert.True(t, <-updates)
	assert.False(t, <-updates)
}

func TestCloseCompletesLoaders(t *testing.T) {
	svc := newTestService()
	svc.Close()

	_, err := stream.Collect(context.Background(), svc.CharactersLoader())
	assert.NoError(t, err)
	_, err = stream.Collect(context.Background(), svc.PlanetLoader())
	assert.NoError(t, err)
}
