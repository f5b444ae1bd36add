// internal/platform/workerpool/schedulers.go
package workerpool

import (
	"sort"
)

// PriorityScheduler ordena tareas por prioridad (mayor primero).
type PriorityScheduler struct{}

// NewPriorityScheduler crea un scheduler basado en prioridad.
func NewPriorityScheduler() *PriorityScheduler {
	return &PriorityScheduler{}
}

// Schedule ordena por prioridad descendente.
func (s *PriorityScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)

	sort.Slice(scheduled, func(i, j int) bool {
		// Mayor prioridad primero
		if scheduled[i].Priority() != scheduled[j].Priority() {
			return scheduled[i].Priority() > scheduled[j].Priority()
		}
		// Si misma prioridad, menor peso primero (tasks rápidas)
		return scheduled[i].Weight() < scheduled[j].Weight()
	})

	return scheduled
}

// Name retorna el nombre del scheduler.
func (s *PriorityScheduler) Name() string {
	return "priority"
}

// FIFOScheduler no reordena (First In First Out).
type FIFOScheduler struct{}

// NewFIFOScheduler crea un scheduler FIFO.
func NewFIFOScheduler() *FIFOScheduler {
	return &FIFOScheduler{}
}

// Schedule retorna tasks en el orden original.
func (s *FIFOScheduler) Schedule(tasks []Task) []Task {
	scheduled := make([]Task, len(tasks))
	copy(scheduled, tasks)
	return scheduled
}

// Name retorna el nombre del scheduler.
func (s *FIFOScheduler) Name() string {
	return "fifo"
}
