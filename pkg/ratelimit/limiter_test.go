package ratelimit

import (
	"testing"
	"time"
)

func TestIntervalFirstCallImmediate(t *testing.T) {
	limiter := NewInterval(time.Second)

	start := time.Now()
	limiter.Wait()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait should not block, took %v", elapsed)
	}
}

func TestIntervalEnforcesDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	limiter := NewInterval(delay)

	limiter.Wait()
	start := time.Now()
	limiter.Wait()

	if elapsed := time.Since(start); elapsed < delay-5*time.Millisecond {
		t.Errorf("second Wait returned after %v, want at least %v", elapsed, delay)
	}
}

func TestIntervalZeroDelay(t *testing.T) {
	limiter := NewInterval(0)

	start := time.Now()
	for i := 0; i < 10; i++ {
		limiter.Wait()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-delay limiter should not block, took %v", elapsed)
	}
}

func TestIntervalReset(t *testing.T) {
	delay := 200 * time.Millisecond
	limiter := NewInterval(delay)

	limiter.Wait()
	limiter.Reset()

	start := time.Now()
	limiter.Wait()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Wait after Reset should not block, took %v", elapsed)
	}
}

func TestIntervalConcurrentUse(t *testing.T) {
	limiter := NewInterval(time.Millisecond)

	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() {
			limiter.Wait()
			done <- struct{}{}
		}()
	}

	timeout := time.After(2 * time.Second)
	for i := 0; i < 5; i++ {
		select {
		case <-done:
		case <-timeout:
			t.Fatal("concurrent Wait calls did not complete")
		}
	}
}
