// internal/core/usecases/equivalence.go
package usecases

import (
	"strings"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/core/normalize"
	"smsdedup/internal/platform/cache"
)

// Verdict es la decisión sobre un par de records de un mismo bucket.
type Verdict int

const (
	// VerdictDistinct los records no representan el mismo mensaje
	VerdictDistinct Verdict = iota

	// VerdictDuplicate los records representan el mismo mensaje real
	VerdictDuplicate
)

// String retorna la representación string del verdict.
func (v Verdict) String() string {
	if v == VerdictDuplicate {
		return "duplicate"
	}
	return "distinct"
}

// canonicalRecord son las formas canónicas derivadas de un record, calculadas
// una sola vez por pasada. El record original nunca se muta.
type canonicalRecord struct {
	rec *domain.Record

	date     normalize.Value
	addrs    normalize.Value
	protocol domain.Field[normalize.Value]
	body     domain.Field[string]
	subject  domain.Field[string]
	parts    domain.Field[string]

	hasData     bool
	hasProtocol bool
}

// Engine decide si dos records de un bucket son duplicados y cuál de los dos
// conservar. Las comparaciones van de la evidencia más firme a la más débil y
// cortocircuitan a Distinct ante el primer conflicto firme.
type Engine struct {
	opts       normalize.Options
	aggressive bool

	// los mismos participantes se repiten en cada mensaje de una misma
	// conversación; la canonicalización del set se memoiza por texto crudo
	addrCache cache.Cache[normalize.Value]
}

// NewEngine crea un engine de equivalencia.
func NewEngine(opts normalize.Options, aggressive bool) *Engine {
	return &Engine{
		opts:       opts,
		aggressive: aggressive,
		addrCache:  cache.NewMemoryCache[normalize.Value](256),
	}
}

// Canonicalize deriva las formas canónicas de un record.
func (e *Engine) Canonicalize(r *domain.Record) *canonicalRecord {
	c := &canonicalRecord{
		rec:         r,
		addrs:       e.addressKey(r.Addresses),
		hasData:     r.HasData(),
		hasProtocol: r.Protocol.IsPresent(),
	}

	if date, ok := r.Date.Get(); ok {
		c.date = normalize.Timestamp(date, e.opts.TruncateMillis)
	} else {
		c.date = normalize.Known("")
	}

	c.protocol = domain.MapField(r.Protocol, normalize.Protocol)
	c.body = domain.MapField(r.Body, func(s string) string {
		return normalize.Body(s, e.opts.CollapseWhitespace)
	})
	c.subject = domain.MapField(r.Subject, func(s string) string {
		return normalize.Body(s, e.opts.CollapseWhitespace)
	})
	c.parts = normalize.PartsKey(r.Parts)

	return c
}

// Compare decide Duplicate o Distinct para un par del mismo bucket.
func (e *Engine) Compare(a, b *canonicalRecord) Verdict {
	// 1. kind (ignorado en modo agresivo: SMS/MMS/RCS se comparan entre sí)
	if !e.aggressive && a.rec.Kind != b.rec.Kind {
		return VerdictDistinct
	}

	// 2. timestamp canónico
	if !a.date.Equal(b.date) {
		return VerdictDistinct
	}

	// 3. set de participantes canónico
	if !e.aggressive && !a.addrs.Equal(b.addrs) {
		return VerdictDistinct
	}

	// 4. protocolo: la ausencia es neutral, nunca un conflicto
	if !e.aggressive {
		if !domain.EqualNeutralFunc(a.protocol, b.protocol, normalize.Value.Equal) {
			return VerdictDistinct
		}
	}

	// 5. texto del mensaje
	if !domain.EqualStrict(a.body, b.body) {
		return VerdictDistinct
	}
	if !e.aggressive && !domain.EqualStrict(a.subject, b.subject) {
		return VerdictDistinct
	}

	// 6. payloads: multiset insensible al orden; un lado sin adjuntos nunca
	// bloquea, dos sets no vacíos distintos bloquean siempre. El SMIL no
	// entra en el veredicto: es capa de presentación sobre estos mismos
	// payloads, y una copia con los adjuntos eliminados reescribe su SMIL,
	// que nunca debe bloquear el merge con el original completo.
	if !domain.EqualNeutral(a.parts, b.parts) {
		return VerdictDistinct
	}

	return VerdictDuplicate
}

// prefer reporta si a debe conservarse por delante de b dentro de una clase
// de equivalencia: primero el que tiene payloads, luego el que tiene campo de
// protocolo poblado, y como desempate final el primero en orden de entrada.
func (e *Engine) prefer(a, b *canonicalRecord) bool {
	if a.hasData != b.hasData {
		return a.hasData
	}
	if a.hasProtocol != b.hasProtocol {
		return a.hasProtocol
	}
	return a.rec.Index < b.rec.Index
}

// addressKey canonicaliza el set de participantes con memoización.
func (e *Engine) addressKey(addrs []string) normalize.Value {
	key := strings.Join(addrs, "\x1f")
	if cached, ok := e.addrCache.Get(key); ok {
		return cached
	}
	v := normalize.AddressSet(addrs, e.opts.DefaultCountryCode)
	e.addrCache.Set(key, v)
	return v
}
