package stealpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mvasek/gosteal/internal/testutil"
)

func TestFutureResolvesOnce(t *testing.T) {
	fut := newFuture[int]()

	fut.complete(1, nil)
	fut.complete(2, errors.New("late")) // must be ignored

	value, err := fut.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, value, 1)
}

func TestFutureTryGet(t *testing.T) {
	fut := newFuture[string]()

	value, ok, err := fut.TryGet()
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, value, "")
	testutil.AssertNoError(t, err)

	fut.complete("done", nil)

	value, ok, err = fut.TryGet()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, value, "done")
	testutil.AssertNoError(t, err)
}

func TestFutureGetContext(t *testing.T) {
	fut := newFuture[int]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fut.GetContext(ctx)
	testutil.AssertEqual(t, err, context.Canceled)

	// The future itself is unaffected by an abandoned wait.
	fut.complete(7, nil)
	value, err := fut.GetContext(context.Background())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, value, 7)
}

func TestFutureDone(t *testing.T) {
	fut := newFuture[int]()

	select {
	case <-fut.Done():
		t.Fatal("Done closed before resolution")
	default:
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		fut.complete(9, nil)
	}()

	select {
	case <-fut.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after resolution")
	}

	value, err := fut.Get()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, value, 9)
}

func TestFutureErrorOutcome(t *testing.T) {
	fut := newFuture[int]()
	wantErr := errors.New("failed")

	fut.complete(0, wantErr)

	_, err := fut.Get()
	testutil.AssertEqual(t, err, wantErr)

	_, ok, err := fut.TryGet()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, err, wantErr)
}
