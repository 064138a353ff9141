package queue

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRingBuffer_SPSC(t *testing.T) {
	rb := NewRingBuffer[int](1024)
	count := 100_000

	var wg sync.WaitGroup
	wg.Add(2)

	// Producer
	go func() {
		defer wg.Done()
		for i := 0; i < count; i++ {
			for !rb.Offer(i) {
				// Spin wait
			}
		}
		rb.Close()
	}()

	// Consumer
	go func() {
		defer wg.Done()
		received := 0
		for received < count {
			val, ok := rb.Poll()
			if !ok {
				continue
			}
			if val != received {
				t.Errorf("Expected %d, got %d", received, val)
			}
			received++
		}
		if _, ok := rb.Poll(); ok {
			t.Error("Expected an empty queue after the last item")
		}
	}()

	wg.Wait()
}

func TestRingBuffer_Capacity(t *testing.T) {
	rb := NewRingBuffer[int](4) // Should round to 4

	if !rb.Offer(1) {
		t.Fatal("Failed to offer 1")
	}
	if !rb.Offer(2) {
		t.Fatal("Failed to offer 2")
	}
	if !rb.Offer(3) {
		t.Fatal("Failed to offer 3")
	}
	if !rb.Offer(4) {
		t.Fatal("Failed to offer 4")
	}
	if rb.Offer(5) {
		t.Fatal("Should be full")
	}

	val, ok := rb.Poll()
	if !ok || val != 1 {
		t.Fatal("Failed to poll 1")
	}

	if !rb.Offer(5) {
		t.Fatal("Failed to offer 5 after poll")
	}
}

func TestRingBuffer_BlockingSPSC(t *testing.T) {
	ctx := context.Background()
	rb := NewRingBuffer[int](8)
	count := 10_000

	go func() {
		for i := 0; i < count; i++ {
			if err := rb.OfferWait(ctx, i); err != nil {
				t.Errorf("OfferWait failed: %v", err)
				return
			}
		}
		rb.Close()
	}()

	received := 0
	for {
		val, ok := rb.PollWait(ctx)
		if !ok {
			break
		}
		if val != received {
			t.Fatalf("Expected %d, got %d", received, val)
		}
		received++
	}
	if received != count {
		t.Errorf("Expected %d items, got %d", count, received)
	}
}

func TestRingBuffer_WaitHonorsContext(t *testing.T) {
	rb := NewRingBuffer[int](2)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, ok := rb.PollWait(ctx); ok {
		t.Fatal("PollWait on an empty queue should give up when the context ends")
	}

	rb.Offer(1)
	rb.Offer(2)
	if err := rb.OfferWait(ctx, 3); err == nil {
		t.Fatal("OfferWait on a full queue should fail when the context ends")
	}
}
