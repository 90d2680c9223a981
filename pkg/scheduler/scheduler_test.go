package scheduler

import (
	"context"
	"errors"
	"testing"
)

func TestAddAndRemoveJob(t *testing.T) {
	s := New(context.Background())

	id, err := s.AddJob("tick", "@every 60s", func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("AddJob failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a job ID")
	}

	job, err := s.GetJob(id)
	if err != nil {
		t.Fatalf("GetJob failed: %v", err)
	}
	if job.Name != "tick" || job.Spec != "@every 60s" || job.Status != JobStatusScheduled {
		t.Errorf("unexpected job: %+v", job)
	}

	if len(s.GetJobs()) != 1 {
		t.Errorf("expected 1 job, got %d", len(s.GetJobs()))
	}

	if err := s.RemoveJob(id); err != nil {
		t.Fatalf("RemoveJob failed: %v", err)
	}
	if _, err := s.GetJob(id); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}

	if err := s.RemoveJob("nope"); !errors.Is(err, ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound for unknown ID, got %v", err)
	}
}

func TestAddJobRejectsBadSpec(t *testing.T) {
	s := New(context.Background())
	if _, err := s.AddJob("bad", "not a cron spec", func(ctx context.Context) {}); err == nil {
		t.Error("expected error for invalid spec")
	}
}

func TestGetStatus(t *testing.T) {
	s := New(context.Background())
	s.AddJob("tick", "@every 60s", func(ctx context.Context) {})

	status := s.GetStatus()
	if status["job_count"] != 1 {
		t.Errorf("unexpected job_count: %v", status["job_count"])
	}
	if status["entries"] != 1 {
		t.Errorf("unexpected entries: %v", status["entries"])
	}
}
