// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"smsdedup/internal/core/domain"
)

// RunSummary es el resumen de una pasada en formato JSON, para consumo
// por scripts.
type RunSummary struct {
	Inputs       []string                `json:"inputs"`
	TotalRecords int                     `json:"total_records"`
	TotalRemoved int                     `json:"total_removed"`
	Counts       map[string]CountSummary `json:"counts"`
	Removals     []RemovalSummary        `json:"removals"`
	StartTime    time.Time               `json:"start_time"`
	Duration     string                  `json:"duration"`
	Version      string                  `json:"version"`
	Warnings     []string                `json:"warnings,omitempty"`
}

// CountSummary es el triple de conteos de un kind.
type CountSummary struct {
	Original int `json:"original"`
	Removed  int `json:"removed"`
	Final    int `json:"final"`
}

// RemovalSummary es una eliminación reducida a índices y fecha.
type RemovalSummary struct {
	Kind         string `json:"kind"`
	RemovedIndex int    `json:"removed_index"`
	KeptIndex    int    `json:"kept_index"`
	Date         string `json:"date,omitempty"`
}

// BuildRunSummary construye el resumen JSON desde un RunResult.
func BuildRunSummary(result *domain.RunResult) RunSummary {
	counts := make(map[string]CountSummary, len(result.Counts))
	for kind, c := range result.Counts {
		counts[kind.String()] = CountSummary{
			Original: c.Original,
			Removed:  c.Removed,
			Final:    c.Final,
		}
	}

	removals := make([]RemovalSummary, 0, len(result.Ledger))
	for _, r := range result.Ledger {
		removals = append(removals, RemovalSummary{
			Kind:         r.Removed.Kind.String(),
			RemovedIndex: r.Removed.Index,
			KeptIndex:    r.Kept.Index,
			Date:         r.Removed.Field("date"),
		})
	}

	warnings := make([]string, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, w.Stage+": "+w.Message)
	}

	return RunSummary{
		Inputs:       result.Metadata.Inputs,
		TotalRecords: result.Metadata.TotalRecords,
		TotalRemoved: result.TotalRemoved(),
		Counts:       counts,
		Removals:     removals,
		StartTime:    result.Metadata.StartTime,
		Duration:     result.Metadata.Duration.String(),
		Version:      result.Metadata.Version,
		Warnings:     warnings,
	}
}

// WriteJSON emite el resumen con indentación sobre w.
func WriteJSON(w io.Writer, result *domain.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildRunSummary(result))
}

// WriteJSONStdout emite el resumen por stdout.
func WriteJSONStdout(result *domain.RunResult) error {
	return WriteJSON(os.Stdout, result)
}
