// internal/core/usecases/dedupe_service.go
package usecases

import (
	"context"
	"sort"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/platform/logx"
	"smsdedup/internal/platform/workerpool"
)

// DedupeService orquesta la pasada de deduplicación: fingerprint por record,
// bucketing, resolución de equivalencias por bucket y recolección de
// supervivientes, ledger y conteos.
type DedupeService struct {
	engine  *Engine
	logger  logx.Logger
	workers int
}

// NewDedupeService crea el servicio de deduplicación.
// workers > 1 habilita el procesamiento paralelo de buckets; los buckets son
// independientes entre sí y el merge de resultados parciales es determinista,
// así que la salida es idéntica a la secuencial.
func NewDedupeService(engine *Engine, logger logx.Logger, workers int) *DedupeService {
	if workers < 1 {
		workers = 1
	}
	return &DedupeService{
		engine:  engine,
		logger:  logger.With("component", "dedupe"),
		workers: workers,
	}
}

// bucketOutcome es el resultado parcial de un bucket, calculado sin estado
// compartido para poder combinarse al final sin sincronización.
type bucketOutcome struct {
	removals []domain.Removal
}

// Deduplicate ejecuta la pasada completa sobre la secuencia de entrada.
// Los records supervivientes conservan su orden relativo original.
func (d *DedupeService) Deduplicate(ctx context.Context, records []*domain.Record) (*domain.RunResult, error) {
	result := domain.NewRunResult()
	result.Metadata.TotalRecords = len(records)

	if len(records) == 0 {
		return result, nil
	}

	// formas canónicas: derivadas una vez, los records no se mutan
	arena := make([]*canonicalRecord, len(records))
	for i, r := range records {
		arena[i] = d.engine.Canonicalize(r)
	}

	// bucketing O(n); el orden de primera aparición fija el orden de merge
	buckets := make(map[Fingerprint][]int, len(records))
	var bucketOrder []Fingerprint
	for i, c := range arena {
		fp := d.engine.Fingerprint(c)
		if _, seen := buckets[fp]; !seen {
			bucketOrder = append(bucketOrder, fp)
		}
		buckets[fp] = append(buckets[fp], i)
	}
	result.Metadata.Buckets = len(bucketOrder)

	d.logger.Debug("records bucketed",
		"records", len(records),
		"buckets", len(bucketOrder),
	)

	outcomes := d.resolveBuckets(ctx, arena, buckets, bucketOrder)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// combinar resultados parciales en orden determinista
	removed := make(map[int]bool)
	for _, out := range outcomes {
		for _, rm := range out.removals {
			removed[rm.Removed.Index] = true
			result.Ledger = append(result.Ledger, rm)
		}
	}

	// ledger en orden de entrada del record eliminado
	sort.Slice(result.Ledger, func(i, j int) bool {
		return result.Ledger[i].Removed.Index < result.Ledger[j].Removed.Index
	})

	for _, r := range records {
		count := result.Counts[r.Kind]
		count.Original++
		if removed[r.Index] {
			count.Removed++
		} else {
			count.Final++
			result.Survivors = append(result.Survivors, r)
		}
		result.Counts[r.Kind] = count
	}

	// el bookkeeping de conteos no puede fallar; si falla es un bug
	if err := result.Verify(); err != nil {
		return nil, err
	}

	d.logger.Info("deduplication complete",
		"original", len(records),
		"removed", len(result.Ledger),
		"final", len(result.Survivors),
	)

	return result, nil
}

// resolveBuckets resuelve todos los buckets, en secuencia o en paralelo.
func (d *DedupeService) resolveBuckets(ctx context.Context, arena []*canonicalRecord, buckets map[Fingerprint][]int, order []Fingerprint) []bucketOutcome {
	outcomes := make([]bucketOutcome, len(order))

	if d.workers <= 1 {
		for i, fp := range order {
			outcomes[i] = resolveBucket(d.engine, arena, buckets[fp])
		}
		return outcomes
	}

	// los buckets no comparten estado mutable: procesarlos en paralelo es
	// seguro mientras el merge respete el orden de primera aparición
	tasks := make([]workerpool.Task, 0, len(order))
	for i, fp := range order {
		members := buckets[fp]
		if len(members) < 2 {
			continue
		}
		tasks = append(tasks, &bucketTask{
			slot:    i,
			members: members,
			arena:   arena,
			engine:  d.engine,
			out:     outcomes,
		})
	}

	if len(tasks) == 0 {
		return outcomes
	}

	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers:   d.workers,
		Scheduler: workerpool.NewPriorityScheduler(),
		Logger:    d.logger,
	})
	pool.Start()
	pool.Submit(tasks)
	pool.Stop()

	return outcomes
}

// resolveBucket resuelve un bucket: comparaciones pairwise con clausura
// transitiva y elección de representante por clase.
func resolveBucket(engine *Engine, arena []*canonicalRecord, members []int) bucketOutcome {
	if len(members) < 2 {
		return bucketOutcome{}
	}

	uf := newUnionFind(len(members))
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			if uf.same(i, j) {
				continue
			}
			if engine.Compare(arena[members[i]], arena[members[j]]) == VerdictDuplicate {
				uf.union(i, j)
			}
		}
	}

	var out bucketOutcome
	for _, group := range uf.groups() {
		if len(group) < 2 {
			continue
		}

		// representante por el orden de retención, aplicado sobre la clase
		// completa, no solo pairwise
		keeper := group[0]
		for _, local := range group[1:] {
			if engine.prefer(arena[members[local]], arena[members[keeper]]) {
				keeper = local
			}
		}

		kept := domain.Snap(arena[members[keeper]].rec)
		for _, local := range group {
			if local == keeper {
				continue
			}
			out.removals = append(out.removals, domain.Removal{
				Removed: domain.Snap(arena[members[local]].rec),
				Kept:    kept,
			})
		}
	}

	return out
}
