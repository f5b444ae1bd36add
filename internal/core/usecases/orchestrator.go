// internal/core/usecases/orchestrator.go
package usecases

import (
	"context"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/core/ports"
	"smsdedup/internal/platform/errors"
	"smsdedup/internal/platform/logx"
)

// Orchestrator ejecuta el workflow completo: ingestión de todos los inputs,
// deduplicación y emisión del ledger. La escritura del archivo de salida y la
// presentación quedan en manos del caller.
type Orchestrator struct {
	reader ports.Reader
	ledger ports.LedgerSink
	dedupe *DedupeService
	logger logx.Logger
}

// OrchestratorOptions configura el orchestrator.
type OrchestratorOptions struct {
	Reader ports.Reader
	Ledger ports.LedgerSink
	Dedupe *DedupeService
	Logger logx.Logger
}

// NewOrchestrator crea un orchestrator.
func NewOrchestrator(opts OrchestratorOptions) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = logx.New()
	}
	return &Orchestrator{
		reader: opts.Reader,
		ledger: opts.Ledger,
		dedupe: opts.Dedupe,
		logger: logger.With("component", "orchestrator"),
	}
}

// Run ingiere los archivos de entrada en orden, deduplica la secuencia
// combinada y emite el ledger. Un fallo de ingestión es fatal: el engine no
// tiene resultado parcial que ofrecer.
func (o *Orchestrator) Run(ctx context.Context, inputs []string) (*domain.RunResult, error) {
	if len(inputs) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "no input files")
	}

	// múltiples documentos se concatenan en una sola secuencia, preservando
	// el orden por documento y el orden entre documentos
	var records []*domain.Record
	for _, path := range inputs {
		parsed, err := o.reader.Read(ctx, path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to ingest %s", path)
		}
		for _, r := range parsed {
			r.Index = len(records)
			records = append(records, r)
		}
		o.logger.Info("input ingested", "file", path, "records", len(parsed))
	}

	result, err := o.dedupe.Deduplicate(ctx, records)
	if err != nil {
		return nil, errors.Wrap(err, "deduplication failed")
	}
	result.Metadata.Inputs = inputs

	if o.ledger != nil {
		for _, removal := range result.Ledger {
			if err := o.ledger.Write(removal); err != nil {
				return nil, errors.Wrap(err, "failed to write removal ledger")
			}
		}
		if err := o.ledger.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to close removal ledger")
		}
	}

	result.Finalize()
	return result, nil
}
