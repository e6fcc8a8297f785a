package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id      int
	counter *int64
	err     error
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) GetError() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	if j.counter != nil {
		atomic.AddInt64(j.counter, 1)
	}
	return &testResult{id: j.id, err: j.err}
}

func TestPool_ExecutesAllJobs(t *testing.T) {
	pool := NewPool(4)
	pool.Start()

	var executed int64
	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&testJob{id: i, counter: &executed})
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
	if executed != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, executed)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	wantErr := errors.New("boom")
	pool.Submit(&testJob{id: 0})
	pool.Submit(&testJob{id: 1, err: wantErr})

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("Expected 1 failed result, got %d", failures)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	pool.Submit(&testJob{id: 0})
	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
}

func TestPool_SubmitNeverBlocksOnUndrainedResults(t *testing.T) {
	// A single worker with far more jobs than the queue holds: every
	// submission must go through before anything reads results, so
	// finished work cannot be allowed to back up submission.
	pool := NewPool(1)
	pool.Start()

	var executed int64
	const jobs = 32

	submitted := make(chan struct{})
	go func() {
		for i := 0; i < jobs; i++ {
			pool.Submit(&testJob{id: i, counter: &executed})
		}
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(5 * time.Second):
		t.Fatal("Submit blocked with a full queue before Wait was called")
	}

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("Expected %d results, got %d", jobs, len(results))
	}
	if executed != jobs {
		t.Errorf("Expected %d executions, got %d", jobs, executed)
	}
}

func TestPool_CanceledContextStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := newPoolWithContext(ctx, 2)
	pool.Start()

	pool.Submit(&testJob{id: 0})
	if results := pool.Wait(); len(results) != 0 {
		t.Errorf("Expected no results after cancellation, got %d", len(results))
	}
}

func TestPool_NoJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	if results := pool.Wait(); len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestLimiter_AllowRespectsBurst(t *testing.T) {
	// 1 request/second, burst of 2: the first two pass, the third is
	// denied immediately.
	l := NewLimiter(1, 2)

	if !l.Allow() || !l.Allow() {
		t.Fatal("Expected the burst allowance to pass")
	}
	if l.Allow() {
		t.Error("Expected the third immediate request to be denied")
	}
}

func TestLimiter_WaitHonorsContextCancel(t *testing.T) {
	l := NewLimiter(0.001, 1)
	if !l.Allow() {
		t.Fatal("Expected the first request to pass")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("Expected Wait to fail on a canceled context")
	}
}
