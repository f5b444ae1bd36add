// internal/core/ports/reader.go
package ports

import (
	"context"

	"smsdedup/internal/core/domain"
)

// Reader es el port de ingestión: parsea un documento de backup y produce la
// secuencia ordenada de records. El engine no sabe nada de sintaxis XML.
type Reader interface {
	// Read parsea un archivo de backup. Los índices de los records se
	// reasignan después al concatenar múltiples archivos.
	Read(ctx context.Context, path string) ([]*domain.Record, error)
}
