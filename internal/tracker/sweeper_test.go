package tracker_test

import (
	"context"
	"testing"
	"time"

	"jobseeker/internal/tracker"
)

func TestSweeper_DeactivatesStaleJobs(t *testing.T) {
	svc, gdb := newTestService(t)
	uid := createUser(t, gdb, "alice")
	j := seedJob(t, gdb, tracker.Job{UserID: uid, Category: "applied", LastModified: "2023-1-1", Active: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		(&tracker.Sweeper{Svc: svc, Interval: 10 * time.Millisecond}).Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		var got tracker.Job
		if err := gdb.First(&got, j.ID).Error; err != nil {
			t.Fatal(err)
		}
		if !got.Active {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("sweeper did not deactivate stale job")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func TestSweeper_DisabledReturnsImmediately(t *testing.T) {
	done := make(chan struct{})
	go func() {
		(&tracker.Sweeper{Interval: 0}).Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return when the interval is 0")
	}
}

func TestSweeper_SweepsOnStart(t *testing.T) {
	svc, gdb := newTestService(t)
	uid := createUser(t, gdb, "alice")
	j := seedJob(t, gdb, tracker.Job{UserID: uid, Category: "applied", LastModified: "2023-1-1", Active: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go (&tracker.Sweeper{Svc: svc, Interval: time.Hour}).Run(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for {
		var got tracker.Job
		if err := gdb.First(&got, j.ID).Error; err != nil {
			t.Fatal(err)
		}
		if !got.Active {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("stale job still active; the first sweep should not wait for the interval")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
