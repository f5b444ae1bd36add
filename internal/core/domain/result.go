// internal/core/domain/result.go
package domain

import (
	"fmt"
	"time"
)

// KindCount es el triple de conteos por kind del resumen final.
type KindCount struct {
	// Original mensajes de este kind en la entrada
	Original int

	// Removed mensajes eliminados como duplicados
	Removed int

	// Final mensajes supervivientes
	Final int
}

// RunResult representa el resultado completo de una pasada de deduplicación.
type RunResult struct {
	// Survivors records conservados, en el orden relativo original
	Survivors []*Record

	// Ledger eliminaciones en orden de entrada del record eliminado
	Ledger []Removal

	// Counts conteos por kind
	Counts map[Kind]KindCount

	// Metadata información sobre la ejecución
	Metadata RunMetadata

	// Warnings advertencias no críticas durante la pasada
	Warnings []Warning
}

// RunMetadata contiene información sobre la ejecución.
type RunMetadata struct {
	// StartTime momento de inicio
	StartTime time.Time

	// EndTime momento de finalización
	EndTime time.Time

	// Duration duración total
	Duration time.Duration

	// Inputs archivos de entrada procesados en orden
	Inputs []string

	// TotalRecords records totales ingeridos
	TotalRecords int

	// Buckets número de buckets de fingerprint evaluados
	Buckets int

	// Version versión de smsdedup utilizada
	Version string
}

// Warning representa una advertencia no crítica.
type Warning struct {
	// Stage fase que generó la advertencia
	Stage string

	// Message descripción de la advertencia
	Message string
}

// NewRunResult crea un resultado vacío con el reloj arrancado.
func NewRunResult() *RunResult {
	return &RunResult{
		Counts: make(map[Kind]KindCount),
		Metadata: RunMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize cierra la metadata de la ejecución.
func (r *RunResult) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// AddWarning registra una advertencia.
func (r *RunResult) AddWarning(stage, message string) {
	r.Warnings = append(r.Warnings, Warning{Stage: stage, Message: message})
}

// TotalRemoved retorna el total de eliminaciones de todos los kinds.
func (r *RunResult) TotalRemoved() int {
	total := 0
	for _, c := range r.Counts {
		total += c.Removed
	}
	return total
}

// HasRemovals indica si algún kind tuvo eliminaciones. Si no las hubo, el
// archivo de salida no se escribe.
func (r *RunResult) HasRemovals() bool {
	return r.TotalRemoved() > 0
}

// Verify comprueba la conservación de conteos: para cada kind,
// original == removed + final. Una violación indica un bug de bookkeeping
// y nunca debe ignorarse.
func (r *RunResult) Verify() error {
	for kind, c := range r.Counts {
		if c.Original != c.Removed+c.Final {
			return fmt.Errorf("%w: kind %s has %d original, %d removed, %d final",
				ErrCountMismatch, kind, c.Original, c.Removed, c.Final)
		}
	}
	return nil
}
