package component

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starsearch/internal/logger"
	"starsearch/internal/search"
	"starsearch/internal/starwars"
	"starsearch/internal/starwars/mocks"
	"starsearch/pkg/stream"
)

func records(names ...string) []starwars.Record {
	recs := make([]starwars.Record, len(names))
	for i, n := range names {
		recs[i] = starwars.Record{Name: n}
	}
	return recs
}

func after(d time.Duration, names ...string) stream.Stream[[]starwars.Record] {
	return stream.FromFunc(func(ctx context.Context) ([]starwars.Record, error) {
		select {
		case <-time.After(d):
			return records(names...), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

type fixture struct {
	data       *mocks.MockDataService
	characters *stream.Subject[bool]
	planets    *stream.Subject[bool]
	comp       *Component
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		data:       mocks.NewMockDataService(ctrl),
		characters: stream.NewBehaviorSubject(false),
		planets:    stream.NewBehaviorSubject(false),
	}
	f.data.EXPECT().CharactersLoader().Return(f.characters).AnyTimes()
	f.data.EXPECT().PlanetLoader().Return(f.planets).AnyTimes()

	f.comp = New(f.data, search.Options{Debounce: 20 * time.Millisecond}, logger.Discard())
	t.Cleanup(f.comp.Destroy)
	return f
}

func (f *fixture) eventually(t *testing.T, cond func(State) bool, msg string) {
	t.Helper()
	require.Eventually(t, func() bool { return cond(f.comp.Snapshot()) }, time.Second, 2*time.Millisecond, msg)
}

func TestComponent_LoadingState(t *testing.T) {
	f := newFixture(t)
	f.comp.Init(context.Background())

	f.characters.Next(true)
	f.planets.Next(true)
	f.eventually(t, func(s State) bool { return s.IsLoading }, "loading once every source is busy")

	f.planets.Next(false)
	f.eventually(t, func(s State) bool { return !s.IsLoading }, "idle once a source is done")
}

func TestComponent_Search(t *testing.T) {
	f := newFixture(t)
	f.data.EXPECT().SearchCharacters("luke").Return(after(0, "Luke Skywalker"))

	var changes atomic.Int32
	f.comp.OnChange(func(State) { changes.Add(1) })
	f.comp.Init(context.Background())

	f.comp.ChangeCharactersInput(InputEvent{Value: "lu"})
	f.comp.ChangeCharactersInput(InputEvent{Value: "luke"})

	f.eventually(t, func(s State) bool { return len(s.Results) == 1 }, "lookup result stored")
	assert.Equal(t, "Luke Skywalker", f.comp.Snapshot().Results[0].Name)
	assert.NoError(t, f.comp.Snapshot().SearchErr)
	assert.Positive(t, changes.Load())
}

func TestComponent_SearchFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("search backend down")
	f.data.EXPECT().SearchCharacters("leia").Return(stream.Fail[[]starwars.Record](boom))
	f.comp.Init(context.Background())

	f.comp.ChangeCharactersInput(InputEvent{Value: "leia"})

	f.eventually(t, func(s State) bool { return s.SearchErr != nil }, "search error recorded")
	assert.ErrorIs(t, f.comp.Snapshot().SearchErr, boom)
}

func TestComponent_LoadCharactersAndPlanets(t *testing.T) {
	f := newFixture(t)
	f.data.EXPECT().Characters().Return(after(30*time.Millisecond, "Luke"))
	f.data.EXPECT().Planets().Return(after(5*time.Millisecond, "Tatooine"))
	f.comp.Init(context.Background())

	f.comp.LoadCharactersAndPlanets()

	f.eventually(t, func(s State) bool { return len(s.Combined) == 2 }, "combined list stored")
	assert.Equal(t, []string{"Luke", "Tatooine"}, starwars.Names(f.comp.Snapshot().Combined))
}

func TestComponent_NewLoadReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.data.EXPECT().Characters().Return(after(time.Hour, "Stale")),
		f.data.EXPECT().Characters().Return(after(0, "Luke")),
	)
	f.data.EXPECT().Planets().Return(after(0, "Tatooine")).Times(2)
	f.comp.Init(context.Background())

	f.comp.LoadCharactersAndPlanets()
	f.comp.LoadCharactersAndPlanets()

	f.eventually(t, func(s State) bool { return len(s.Combined) == 2 }, "second load stored")
	assert.Equal(t, "Luke", f.comp.Snapshot().Combined[0].Name)
}

func TestComponent_CombinedFailure(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("planets unavailable")
	f.data.EXPECT().Characters().Return(after(time.Second, "Luke"))
	f.data.EXPECT().Planets().Return(stream.Fail[[]starwars.Record](boom))
	f.comp.Init(context.Background())

	f.comp.LoadCharactersAndPlanets()

	f.eventually(t, func(s State) bool { return s.CombinedErr != nil }, "combined error recorded")
	assert.ErrorIs(t, f.comp.Snapshot().CombinedErr, boom)
	assert.Empty(t, f.comp.Snapshot().Combined)
}

func TestComponent_DestroyStopsUpdates(t *testing.T) {
	f := newFixture(t)
	f.comp.Init(context.Background())

	f.characters.Next(true)
	f.planets.Next(true)
	f.eventually(t, func(s State) bool { return s.IsLoading }, "loading")

	var changes atomic.Int32
	f.comp.OnChange(func(State) { changes.Add(1) })
	f.comp.Destroy()
	f.comp.Destroy()

	f.planets.Next(false)
	f.characters.Next(false)
	time.Sleep(20 * time.Millisecond)

	assert.True(t, f.comp.Snapshot().IsLoading, "state frozen after Destroy")
	assert.Zero(t, changes.Load())

	// Calls after Destroy are no-ops.
	f.comp.LoadCharactersAndPlanets()
	f.comp.ChangeCharactersInput(InputEvent{Value: "ignored"})
}

func TestComponent_LoadBeforeInitIsNoop(t *testing.T) {
	f := newFixture(t)
	f.comp.LoadCharactersAndPlanets()
	assert.Empty(t, f.comp.Snapshot().Combined)
}
