package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleIntervalRunsJob(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var runs atomic.Int32
	err := s.ScheduleInterval(TagTopicRefresh, 50*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("ScheduleInterval: %v", err)
	}
	s.Start()

	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if runs.Load() < 2 {
		t.Fatalf("job ran %d times", runs.Load())
	}
}

func TestTagsAreUnique(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	noop := func(context.Context) error { return nil }
	if err := s.ScheduleInterval(TagIndexReload, time.Minute, noop); err != nil {
		t.Fatal(err)
	}
	if err := s.ScheduleInterval(TagIndexReload, time.Minute, noop); err == nil {
		t.Fatal("expected duplicate tag error")
	}
	if len(s.GetJobs()) != 1 {
		t.Errorf("jobs = %d", len(s.GetJobs()))
	}
	if err := s.RemoveJob(TagIndexReload); err != nil {
		t.Fatalf("RemoveJob: %v", err)
	}
	if len(s.GetJobs()) != 0 {
		t.Errorf("job not removed")
	}
}

func TestStopCancelsJobContext(t *testing.T) {
	s := NewScheduler()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	s.ScheduleInterval(TagTopicRefresh, time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return errors.New("cancelled")
	})
	s.Start()

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job never started")
	}
	s.Stop()

	select {
	case <-cancelled:
	case <-time.After(3 * time.Second):
		t.Fatal("job context not cancelled on Stop")
	}
}
