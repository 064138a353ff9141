package search

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"starsearch/internal/logger"
	"starsearch/internal/metrics"
	"starsearch/internal/starwars"
	"starsearch/internal/starwars/mocks"
	"starsearch/pkg/stream"
)

func respond(d time.Duration, names ...string) stream.Stream[[]starwars.Record] {
	return stream.FromFunc(func(ctx context.Context) ([]starwars.Record, error) {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		recs := make([]starwars.Record, len(names))
		for i, n := range names {
			recs[i] = starwars.Record{Name: n}
		}
		return recs, nil
	})
}

// collectAsync runs Results in the background and waits briefly so the
// pipeline is subscribed before terms arrive.
func collectAsync(t *testing.T, d *Dispatcher) <-chan [][]starwars.Record {
	t.Helper()
	out := make(chan [][]starwars.Record, 1)
	go func() {
		got, err := stream.Collect(context.Background(), d.Results())
		assert.NoError(t, err)
		out <- got
	}()
	time.Sleep(20 * time.Millisecond)
	return out
}

func TestDispatcher_ShortTermsNeverDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	// No SearchCharacters expectation: any call fails the test.

	filtered := testutil.ToFloat64(metrics.TermsFiltered)

	d := NewDispatcher(searcher, Options{Debounce: 10 * time.Millisecond}, logger.Discard())
	d.Submit("ab")
	d.Submit("abc")
	d.Submit("ñoñ") // three runes, five bytes
	d.Close()

	got, err := stream.Collect(context.Background(), d.Results())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, filtered+3, testutil.ToFloat64(metrics.TermsFiltered))
}

func TestDispatcher_BurstDispatchesOnlyLastTerm(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	searcher.EXPECT().SearchCharacters("abcde").Return(respond(0, "Abcde")).Times(1)

	var logs bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Format: "json", Writer: &logs})
	require.NoError(t, err)

	d := NewDispatcher(searcher, Options{Debounce: 150 * time.Millisecond}, log)
	results := collectAsync(t, d)

	d.Submit("abcd")
	time.Sleep(50 * time.Millisecond)
	d.Submit("abcde")
	time.Sleep(300 * time.Millisecond)
	d.Close()

	got := <-results
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Abcde"}, starwars.Names(got[0]))
	assert.Contains(t, logs.String(), `"request_id"`)
	assert.Contains(t, logs.String(), `"term":"abcde"`)
}

func TestDispatcher_ResultsInCompletionOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	searcher.EXPECT().SearchCharacters("slow term").Return(respond(150*time.Millisecond, "Slow"))
	searcher.EXPECT().SearchCharacters("fast term").Return(respond(10*time.Millisecond, "Fast"))

	window := 20 * time.Millisecond
	d := NewDispatcher(searcher, Options{Debounce: window}, logger.Discard())
	results := collectAsync(t, d)

	d.Submit("slow term")
	time.Sleep(3 * window)
	d.Submit("fast term")
	d.Close()

	got := <-results
	require.Len(t, got, 2, "the earlier lookup is not cancelled by the later one")
	assert.Equal(t, "Fast", got[0][0].Name)
	assert.Equal(t, "Slow", got[1][0].Name)
}

func TestDispatcher_LookupFailureTerminatesResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	boom := errors.New("search backend down")
	searcher.EXPECT().SearchCharacters("luke").Return(stream.Fail[[]starwars.Record](boom))

	failures := testutil.ToFloat64(metrics.LookupFailures)

	d := NewDispatcher(searcher, Options{Debounce: 10 * time.Millisecond}, logger.Discard())
	d.Submit("luke")

	_, err := stream.Collect(context.Background(), d.Results())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, failures+1, testutil.ToFloat64(metrics.LookupFailures))
}

func TestDispatcher_FailureCancelsSiblingsWithoutCountingThem(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	boom := errors.New("search backend down")
	searcher.EXPECT().SearchCharacters("slow term").Return(respond(time.Second, "Slow"))
	searcher.EXPECT().SearchCharacters("bad term").Return(stream.Fail[[]starwars.Record](boom))

	var logs bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &logs})
	require.NoError(t, err)

	failures := testutil.ToFloat64(metrics.LookupFailures)
	cancelled := testutil.ToFloat64(metrics.LookupsCancelled)

	window := 10 * time.Millisecond
	d := NewDispatcher(searcher, Options{Debounce: window}, log)
	errCh := make(chan error, 1)
	go func() {
		_, err := stream.Collect(context.Background(), d.Results())
		errCh <- err
	}()
	time.Sleep(20 * time.Millisecond)

	d.Submit("slow term")
	time.Sleep(5 * window)
	d.Submit("bad term")

	require.ErrorIs(t, <-errCh, boom)
	assert.Equal(t, failures+1, testutil.ToFloat64(metrics.LookupFailures), "only the failed lookup is a failure")
	assert.Equal(t, cancelled+1, testutil.ToFloat64(metrics.LookupsCancelled))
	assert.Equal(t, 1, strings.Count(logs.String(), "lookup failed"))
	assert.Contains(t, logs.String(), "lookup cancelled")
}

func TestDispatcher_LengthCountsRunes(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	// Astral-plane runes count once each, however they are encoded.
	searcher.EXPECT().SearchCharacters("😀😀😀😀").Return(respond(0, "Emoji"))

	filtered := testutil.ToFloat64(metrics.TermsFiltered)

	d := NewDispatcher(searcher, Options{Debounce: 10 * time.Millisecond}, logger.Discard())
	results := collectAsync(t, d)

	d.Submit("😀😀")
	time.Sleep(30 * time.Millisecond)
	d.Submit("😀😀😀😀")
	d.Close()

	got := <-results
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Emoji"}, starwars.Names(got[0]))
	assert.Equal(t, filtered+1, testutil.ToFloat64(metrics.TermsFiltered))
}

func TestDispatcher_CloseFlushesPendingTerm(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	searcher.EXPECT().SearchCharacters("vader").Return(respond(0, "Darth Vader"))

	d := NewDispatcher(searcher, Options{Debounce: time.Hour}, logger.Discard())
	d.Submit("vader")
	d.Close()

	got, err := stream.Collect(context.Background(), d.Results())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, strings.HasSuffix(got[0][0].Name, "Vader"))
}

func TestNewDispatcher_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := mocks.NewMockDataService(ctrl)
	searcher.EXPECT().SearchCharacters("abcd").Return(respond(0))

	// Zero options: four-rune minimum, the pending term flushes on Close.
	d := NewDispatcher(searcher, Options{}, logger.Discard())
	d.Submit("abc")
	d.Submit("abcd")
	d.Close()

	got, err := stream.Collect(context.Background(), d.Results())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
