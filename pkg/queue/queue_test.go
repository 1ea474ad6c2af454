package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mvasek/gosteal/internal/testutil"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue[int]()

	for i := 0; i < 10; i++ {
		q.Push(i)
	}

	testutil.AssertEqual(t, q.Len(), 10)

	for i := 0; i < 10; i++ {
		item, ok := q.TryPop()
		testutil.AssertEqual(t, ok, true)
		testutil.AssertEqual(t, item, i)
	}

	testutil.AssertEqual(t, q.Len(), 0)
}

func TestQueueTryPopEmpty(t *testing.T) {
	q := NewQueue[string]()

	item, ok := q.TryPop()
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, item, "")
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	got := make(chan int, 1)
	go func() {
		item, err := q.Pop(ctx)
		if err != nil {
			t.Errorf("Pop returned error: %v", err)
			return
		}
		got <- item
	}()

	// Give the consumer time to block before pushing.
	time.Sleep(10 * time.Millisecond)
	q.Push(42)

	select {
	case item := <-got:
		testutil.AssertEqual(t, item, 42)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Pop to return")
	}
}

func TestQueuePopContextCancel(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := q.Pop(ctx)
		errCh <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		testutil.AssertEqual(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Pop did not observe context cancellation")
	}
}

func TestQueueConcurrentProducersConsumers(t *testing.T) {
	q := NewQueue[int]()
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	const producers = 4
	const itemsPerProducer = 100
	const total = producers * itemsPerProducer

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				q.Push(base + i)
			}
		}(p * itemsPerProducer)
	}

	seen := make(map[int]bool)
	var mu sync.Mutex
	var consumeWg sync.WaitGroup
	for c := 0; c < 3; c++ {
		consumeWg.Add(1)
		go func() {
			defer consumeWg.Done()
			for {
				mu.Lock()
				done := len(seen) == total
				mu.Unlock()
				if done {
					return
				}
				item, err := q.Pop(ctx)
				if err != nil {
					return
				}
				mu.Lock()
				seen[item] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == total
	})
	cancel()
	consumeWg.Wait()

	mu.Lock()
	defer mu.Unlock()
	testutil.AssertEqual(t, len(seen), total)
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[int]()
	for i := 0; i < 5; i++ {
		q.Push(i)
	}

	items := q.Drain()
	testutil.AssertEqual(t, len(items), 5)
	testutil.AssertEqual(t, q.Len(), 0)
	for i, item := range items {
		testutil.AssertEqual(t, item, i)
	}
}
