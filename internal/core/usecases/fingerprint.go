// internal/core/usecases/fingerprint.go
package usecases

import (
	"crypto/sha256"
	"fmt"
	"io"

	"smsdedup/internal/core/domain"
)

// Fingerprint es la clave gruesa de bucketing de un record. Es
// deliberadamente más gruesa que la equivalencia completa: nunca separa dos
// records que el engine consideraría duplicados, pero puede agrupar
// no-duplicados (el engine los resuelve después, no se aceptan como merge).
type Fingerprint string

// Fingerprint deriva la clave de bucketing de un record canonicalizado.
// Solo entran los campos de comparación estricta (kind, fecha, participantes,
// texto); los campos con reglas de neutralidad (protocolo, payloads, SMIL)
// quedan fuera porque partirían buckets que el engine uniría.
func (e *Engine) Fingerprint(c *canonicalRecord) Fingerprint {
	// un record con algún canónico unknown de comparación estricta no iguala
	// a nada: bucket propio, sobrevive como falso negativo en lugar de
	// eliminarse mal. En modo agresivo los participantes no se comparan, así
	// que un set unknown no puede partir buckets.
	if !c.date.IsKnown() || (!e.aggressive && !c.addrs.IsKnown()) {
		return Fingerprint(fmt.Sprintf("!unknown:%d", c.rec.Index))
	}

	h := sha256.New()
	if !e.aggressive {
		writeComponent(h, "kind", string(c.rec.Kind))
		writeComponent(h, "addrs", c.addrs.Raw())
	}
	writeComponent(h, "date", c.date.Raw())
	writeFieldComponent(h, "body", c.body)
	if !e.aggressive {
		writeFieldComponent(h, "subject", c.subject)
	}

	return Fingerprint(fmt.Sprintf("%x", h.Sum(nil)))
}

func writeComponent(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%s\x1f%s\x1e", name, value)
}

// writeFieldComponent incluye la presencia en la clave: un campo ausente y
// uno presente-pero-vacío deben caer en buckets distintos, igual que en la
// comparación estricta.
func writeFieldComponent(w io.Writer, name string, f domain.Field[string]) {
	if v, ok := f.Get(); ok {
		fmt.Fprintf(w, "%s\x1f1\x1f%s\x1e", name, v)
	} else {
		fmt.Fprintf(w, "%s\x1f0\x1e", name)
	}
}
