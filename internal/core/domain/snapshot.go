// internal/core/domain/snapshot.go
package domain

import (
	"fmt"
	"sort"
	"strings"
)

// snapshotValueLimit longitud máxima de un valor antes de reportar solo su
// longitud en el ledger (payloads grandes nunca se vuelcan al log).
const snapshotValueLimit = 1000

// SnapshotField es un campo comparado capturado en el momento de la decisión.
type SnapshotField struct {
	Name  string
	Value string
}

// Snapshot captura el set completo de campos comparados de un record para
// el ledger de eliminaciones.
type Snapshot struct {
	Kind   Kind
	Index  int
	Fields []SnapshotField
}

// Removal es una entrada del ledger: el record eliminado y el record
// conservado en su lugar.
type Removal struct {
	Removed Snapshot
	Kept    Snapshot
}

// Snap captura los campos comparados de un record. Valores que superan el
// límite se reportan por longitud, no por contenido.
func Snap(r *Record) Snapshot {
	s := Snapshot{Kind: r.Kind, Index: r.Index}

	if date, ok := r.Date.Get(); ok {
		s.add("date", date)
	}
	if len(r.Addresses) > 0 {
		s.add("address", joinUniqueSorted(r.Addresses))
	}
	if body, ok := r.Body.Get(); ok {
		s.add("body", clipValue(body))
	}
	if subject, ok := r.Subject.Get(); ok {
		s.add("subject", clipValue(subject))
	}
	if proto, ok := r.Protocol.Get(); ok {
		s.add("type", proto)
	}
	if len(r.Parts) > 0 {
		rendered := make([]string, 0, len(r.Parts))
		for _, p := range r.Parts {
			rendered = append(rendered, renderPart(p))
		}
		s.add("data", joinUniqueSorted(rendered))
	}

	return s
}

func (s *Snapshot) add(name, value string) {
	s.Fields = append(s.Fields, SnapshotField{Name: name, Value: value})
}

// Field retorna el valor de un campo capturado, o "" si no existe.
func (s Snapshot) Field(name string) string {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func renderPart(p DataPart) string {
	data, ok := p.Data.Get()
	if !ok {
		return fmt.Sprintf("%s (no data)", p.Name)
	}
	if len(data) >= snapshotValueLimit {
		return fmt.Sprintf("<LENGTH %d OMISSION>", len(data))
	}
	return fmt.Sprintf("%s (%d bytes)", p.Name, len(data))
}

func clipValue(v string) string {
	if len(v) >= snapshotValueLimit {
		return fmt.Sprintf("<LENGTH %d OMISSION>", len(v))
	}
	return v
}

// joinUniqueSorted une valores únicos ordenados, el formato del log original.
func joinUniqueSorted(values []string) string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	sort.Strings(unique)
	return strings.Join(unique, " | ")
}
