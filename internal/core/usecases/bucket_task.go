// internal/core/usecases/bucket_task.go
package usecases

import (
	"context"
	"fmt"
)

// bucketTask adapta la resolución de un bucket al worker pool. Cada task
// escribe únicamente en su slot del slice de outcomes, así que no hay estado
// compartido entre tasks.
type bucketTask struct {
	slot    int
	members []int
	arena   []*canonicalRecord
	engine  *Engine
	out     []bucketOutcome
}

// Execute resuelve el bucket.
func (t *bucketTask) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.out[t.slot] = resolveBucket(t.engine, t.arena, t.members)
	return nil
}

// Priority retorna el tamaño del bucket: los buckets grandes (comparación
// cuadrática) arrancan primero para equilibrar la carga.
func (t *bucketTask) Priority() int {
	return len(t.members)
}

// Weight retorna el costo estimado de la tarea (0-100).
func (t *bucketTask) Weight() int {
	w := len(t.members) * len(t.members) / 10
	if w > 100 {
		return 100
	}
	return w
}

// Name retorna el nombre de la tarea.
func (t *bucketTask) Name() string {
	return fmt.Sprintf("bucket-%d", t.slot)
}
