// internal/core/ports/presenter.go
package ports

import "smsdedup/internal/core/domain"

// RunInfo es la información de cabecera de una ejecución.
type RunInfo struct {
	Inputs             []string
	OutputPath         string
	LogPath            string
	DefaultCountryCode string
	IgnoreMillis       bool
	IgnoreWhitespace   bool
	Aggressive         bool
	Workers            int
	Version            string
}

// Presenter es el port de presentación en terminal.
type Presenter interface {
	// Start muestra la cabecera de la ejecución.
	Start(info RunInfo)

	// Phase reporta el avance de una fase (lectura, deduplicación, escritura).
	Phase(name string, detail string)

	// Summary muestra la tabla final de conteos por kind.
	Summary(result *domain.RunResult)
}
