package testutil

import (
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(t)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("context should have a deadline")
	}
	if time.Until(deadline) > TestTimeout {
		t.Errorf("deadline %v exceeds TestTimeout %v", deadline, TestTimeout)
	}
}

func TestAssertEqual(t *testing.T) {
	AssertEqual(t, 1, 1)
	AssertEqual(t, "a", "a")
}

func TestEventually(t *testing.T) {
	start := time.Now()
	count := 0
	Eventually(t, time.Second, func() bool {
		count++
		return count > 3
	})
	if time.Since(start) > time.Second {
		t.Error("Eventually returned after the timeout")
	}
}
