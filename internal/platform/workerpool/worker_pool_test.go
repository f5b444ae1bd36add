// internal/platform/workerpool/worker_pool_test.go
package workerpool

import (
	"context"
	"sync/atomic"
	"testing"

	"smsdedup/internal/platform/logx"
)

type fakeTask struct {
	name     string
	priority int
	weight   int
	runs     *atomic.Int32
}

func (t *fakeTask) Execute(ctx context.Context) error {
	if t.runs != nil {
		t.runs.Add(1)
	}
	return nil
}

func (t *fakeTask) Priority() int { return t.priority }
func (t *fakeTask) Weight() int   { return t.weight }
func (t *fakeTask) Name() string  { return t.name }

func TestSubmitRunsAllTasks(t *testing.T) {
	var runs atomic.Int32

	tasks := make([]Task, 0, 10)
	for i := 0; i < 10; i++ {
		tasks = append(tasks, &fakeTask{name: "task", runs: &runs})
	}

	pool := NewWorkerPool(WorkerPoolConfig{
		Workers: 3,
		Logger:  logx.NewSilent(),
	})
	pool.Start()
	results := pool.Submit(tasks)
	pool.Stop()

	if len(results) != 10 {
		t.Fatalf("Submit returned %d results, want 10", len(results))
	}
	if got := runs.Load(); got != 10 {
		t.Errorf("executed %d tasks, want 10", got)
	}
	for _, r := range results {
		if r.Error != nil {
			t.Errorf("task %s returned error: %v", r.Task.Name(), r.Error)
		}
	}
}

func TestSubmitEmpty(t *testing.T) {
	pool := NewWorkerPool(WorkerPoolConfig{Workers: 1, Logger: logx.NewSilent()})
	pool.Start()
	defer pool.Stop()

	if results := pool.Submit(nil); len(results) != 0 {
		t.Errorf("Submit(nil) returned %d results, want 0", len(results))
	}
}

func TestPrioritySchedulerOrder(t *testing.T) {
	tasks := []Task{
		&fakeTask{name: "low", priority: 1, weight: 5},
		&fakeTask{name: "high-heavy", priority: 9, weight: 50},
		&fakeTask{name: "high-light", priority: 9, weight: 10},
	}

	scheduled := NewPriorityScheduler().Schedule(tasks)

	want := []string{"high-light", "high-heavy", "low"}
	for i, name := range want {
		if scheduled[i].Name() != name {
			t.Errorf("scheduled[%d] = %s, want %s", i, scheduled[i].Name(), name)
		}
	}
	// el slice original no se reordena
	if tasks[0].Name() != "low" {
		t.Error("Schedule must not mutate its input")
	}
}

func TestFIFOSchedulerKeepsOrder(t *testing.T) {
	tasks := []Task{
		&fakeTask{name: "a", priority: 1},
		&fakeTask{name: "b", priority: 9},
	}

	scheduled := NewFIFOScheduler().Schedule(tasks)
	if scheduled[0].Name() != "a" || scheduled[1].Name() != "b" {
		t.Error("FIFO must preserve submission order")
	}
}
