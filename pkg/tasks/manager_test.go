package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"saganowatch/pkg/sagano"
)

type stubChecker struct {
	result *sagano.CheckResult
}

func (s *stubChecker) Check(ctx context.Context, date string, dep, arr sagano.Station, seats int) *sagano.CheckResult {
	out := *s.result
	out.Date = date
	return &out
}

func waitForTask(t *testing.T, tm *TaskManager, id string) *Task {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		task, err := tm.GetTask(id)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if task.Status == TaskStatusCompleted || task.Status == TaskStatusFailed {
			return task
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("task did not finish in time")
	return nil
}

func TestExecuteCheckTask(t *testing.T) {
	checker := &stubChecker{result: &sagano.CheckResult{
		Slots: []sagano.Slot{
			{Time: "09:02", TrainID: "Sagano 1", Available: true},
			{Time: "10:02", TrainID: "Sagano 3", Available: false},
		},
	}}
	tm := NewTaskManager(context.Background(), checker)

	res, err := tm.ExecuteTask(&TaskRequest{
		Type:   TaskTypeCheck,
		Config: TaskConfig{Date: "2026-09-15", Departure: "saga", Arrival: "kameoka", Seats: 2},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}
	if res.Status != string(TaskStatusPending) {
		t.Errorf("expected pending initial status, got %s", res.Status)
	}

	task := waitForTask(t, tm, res.ID)
	if task.Status != TaskStatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", task.Status, task.Error)
	}
	if task.Result == nil || task.Result.Check == nil {
		t.Fatal("expected check result attached")
	}
	if len(task.Result.Check.Slots) != 2 {
		t.Errorf("unexpected slots: %+v", task.Result.Check.Slots)
	}
	if task.Result.Message != "2 slots, 1 available" {
		t.Errorf("unexpected message: %s", task.Result.Message)
	}

	// Finished tasks move to history
	if len(tm.GetTasks()) != 0 {
		t.Error("finished task still listed as active")
	}
	if len(tm.GetTaskHistory()) != 1 {
		t.Error("finished task missing from history")
	}
}

func TestExecuteTaskValidation(t *testing.T) {
	tm := NewTaskManager(context.Background(), &stubChecker{result: &sagano.CheckResult{}})

	_, err := tm.ExecuteTask(&TaskRequest{Type: TaskTypeCheck})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for missing date, got %v", err)
	}

	_, err = tm.ExecuteTask(&TaskRequest{Type: TaskTypeCheck, Config: TaskConfig{Date: "not-a-date"}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for bad date, got %v", err)
	}

	_, err = tm.ExecuteTask(&TaskRequest{Type: "bogus"})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for unknown type, got %v", err)
	}

	_, err = tm.ExecuteTask(&TaskRequest{Type: TaskTypeScreenshot})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("expected ErrInvalidRequest for missing path, got %v", err)
	}
}

func TestFailedCheckTask(t *testing.T) {
	checker := &stubChecker{result: &sagano.CheckResult{Err: sagano.ErrNavigationTimeout}}
	tm := NewTaskManager(context.Background(), checker)

	res, err := tm.ExecuteTask(&TaskRequest{
		Type:   TaskTypeCheck,
		Config: TaskConfig{Date: "2026-09-15"},
	})
	if err != nil {
		t.Fatalf("ExecuteTask failed: %v", err)
	}

	task := waitForTask(t, tm, res.ID)
	// The check ran to completion; the failure lives in the result
	if task.Status != TaskStatusCompleted {
		t.Fatalf("expected completed, got %s", task.Status)
	}
	if task.Result.Success {
		t.Error("expected unsuccessful result")
	}
	if task.Result.Error == "" {
		t.Error("expected error detail in result")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	tm := NewTaskManager(context.Background(), &stubChecker{result: &sagano.CheckResult{}})
	if _, err := tm.GetTask("missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
