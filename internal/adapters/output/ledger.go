// internal/adapters/output/ledger.go
package output

import (
	"bufio"
	"fmt"
	"os"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/platform/errors"
	"smsdedup/internal/platform/logx"
)

// ledgerFields orden de campos en cada stanza del log, el formato histórico
// que los usuarios revisan antes de restaurar.
var ledgerFields = []string{"date", "address", "body", "subject", "type", "data"}

// LedgerWriter implementa ports.LedgerSink escribiendo el log de
// eliminaciones en texto plano: por cada eliminación, una stanza con el
// mensaje eliminado y otra con el que se conservó en su lugar.
type LedgerWriter struct {
	f      *os.File
	b      *bufio.Writer
	logger logx.Logger

	entries int
}

// NewLedgerWriter abre (trunca) el archivo de log en path.
func NewLedgerWriter(path string, logger logx.Logger) (*LedgerWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "log %s: %v", path, err)
	}

	return &LedgerWriter{
		f:      f,
		b:      bufio.NewWriter(f),
		logger: logger.With("component", "output.ledger"),
	}, nil
}

// Write registra una eliminación.
func (w *LedgerWriter) Write(removal domain.Removal) error {
	w.writeSnapshot(fmt.Sprintf("Removing %s:", removal.Removed.Kind), removal.Removed)
	w.b.WriteString("\n")
	w.writeSnapshot(fmt.Sprintf("In favor of keeping %s:", removal.Kept.Kind), removal.Kept)
	w.b.WriteString("\n\n")

	w.entries++
	return nil
}

// Close hace flush y cierra el archivo.
func (w *LedgerWriter) Close() error {
	if err := w.b.Flush(); err != nil {
		w.f.Close()
		return err
	}
	w.logger.Debug("ledger closed", "entries", w.entries)
	return w.f.Close()
}

// Entries retorna el número de eliminaciones registradas.
func (w *LedgerWriter) Entries() int {
	return w.entries
}

// writeSnapshot emite una stanza: cabecera más una línea por campo
// capturado, con el nombre alineado a la derecha.
func (w *LedgerWriter) writeSnapshot(header string, s domain.Snapshot) {
	w.b.WriteString(header + "\n")
	for _, name := range ledgerFields {
		if value := s.Field(name); value != "" {
			fmt.Fprintf(w.b, "%8s: %s\n", name, value)
		}
	}
}
