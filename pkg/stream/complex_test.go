package stream

import (
	"context"
	"errors"
	"testing"
)

func TestComplexPipeline(t *testing.T) {
	ctx := context.Background()

	// 1. Sources
	count := 1000
	gen := func(ctx context.Context, out chan<- int) error {
		for i := 0; i < count; i++ {
			out <- i
		}
		return nil
	}

	// 2. Two branches: Map -> Async
	b1 := Source(gen).Via(Map(func(i int) int { return i * 2 })).Async(128)
	b2 := Source(gen).Via(Map(func(i int) int { return i * 3 })).Async(128)

	// 3. Merge
	merged := Merge(b1, b2)

	// 4. Sink
	sink := NewCollectorSink[int]()

	// 5. Run
	if err := merged.To(sink).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// 6. Verify
	results := sink.(*CollectorSink[int]).Results()
	if len(results) != count*2 {
		t.Errorf("Expected %d results, got %d", count*2, len(results))
	}

	// Verify sums
	sum := 0
	for _, v := range results {
		sum += v
	}

	// Expected sum: Sum(0..999)*2 + Sum(0..999)*3 = Sum(0..999)*5
	expectedSum := 0
	for i := 0; i < count; i++ {
		expectedSum += i * 5
	}

	if sum != expectedSum {
		t.Errorf("Expected sum %d, got %d", expectedSum, sum)
	}
}

func TestMergeFailureCancelsOtherInputs(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	// An input that never ends on its own.
	endless := NewSubject[int]()

	_, err := Collect(ctx, Merge(endless, Fail[int](boom)))
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom, got %v", err)
	}
	if n := endless.Observed(); n != 0 {
		t.Errorf("Expected the endless input to be released, %d runs still subscribed", n)
	}
}

func TestMergePreservesPerInputOrder(t *testing.T) {
	ctx := context.Background()

	a := FromSlice([]int{1, 2, 3, 4, 5}, WithBatchSize(1))
	b := FromSlice([]int{10, 20, 30, 40, 50}, WithBatchSize(1))

	got, err := Collect(ctx, Merge(a, b))
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	var fromA, fromB []int
	for _, v := range got {
		if v < 10 {
			fromA = append(fromA, v)
		} else {
			fromB = append(fromB, v)
		}
	}
	for i := 1; i < len(fromA); i++ {
		if fromA[i] < fromA[i-1] {
			t.Fatalf("Input A reordered: %v", fromA)
		}
	}
	for i := 1; i < len(fromB); i++ {
		if fromB[i] < fromB[i-1] {
			t.Fatalf("Input B reordered: %v", fromB)
		}
	}
}
