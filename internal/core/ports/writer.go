// internal/core/ports/writer.go
package ports

import "smsdedup/internal/core/domain"

// Writer es el port de emisión del set superviviente.
type Writer interface {
	// Write serializa los supervivientes a un archivo de salida.
	Write(path string, result *domain.RunResult) error
}

// LedgerSink recibe las eliminaciones resueltas, en orden.
type LedgerSink interface {
	// Write registra una eliminación.
	Write(removal domain.Removal) error

	// Close cierra el sink y hace flush de lo pendiente.
	Close() error
}
