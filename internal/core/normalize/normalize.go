// internal/core/normalize/normalize.go
package normalize

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"smsdedup/internal/core/domain"
)

// Options controla las normalizaciones activas de una pasada.
type Options struct {
	// DefaultCountryCode prefijo asumido para números sin código de país
	DefaultCountryCode string

	// TruncateMillis compara timestamps a granularidad de segundos
	TruncateMillis bool

	// CollapseWhitespace colapsa secuencias de whitespace en textos
	CollapseWhitespace bool
}

// DefaultOptions retorna las opciones por defecto (+1, sin tolerancias).
func DefaultOptions() Options {
	return Options{DefaultCountryCode: "+1"}
}

// Value es una forma canónica comparable. Un valor malformado canonicaliza
// a unknown, que no satisface igualdad contra nada (ni contra otro unknown):
// el par cae a comparación estructural completa en lugar de un match falso.
type Value struct {
	s     string
	known bool
}

// Known crea un valor canónico conocido.
func Known(s string) Value {
	return Value{s: s, known: true}
}

// Unknown crea el marcador conservador que nunca iguala.
func Unknown() Value {
	return Value{}
}

// IsKnown indica si el valor canonicalizó correctamente.
func (v Value) IsKnown() bool {
	return v.known
}

// Raw retorna la forma canónica en texto ("" si unknown).
func (v Value) Raw() string {
	return v.s
}

// Equal compara dos valores canónicos. Unknown nunca iguala.
func (v Value) Equal(o Value) bool {
	return v.known && o.known && v.s == o.s
}

// millisThreshold separa epochs en segundos de epochs en milisegundos.
// Un epoch en segundos no alcanza 1e12 hasta el año 33658.
const millisThreshold = 1_000_000_000_000

// Phone canonicaliza un número de teléfono: descarta todo lo que no sea
// dígito salvo un + inicial, y antepone el código de país por defecto a los
// números que no llevan ninguno. Participantes sin dígitos (e.g. direcciones
// de email en MMS de grupo) se comparan como texto plano en minúsculas.
func Phone(raw, defaultCountryCode string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Unknown()
	}

	explicit := strings.HasPrefix(raw, "+")
	digits := keepDigits(raw)
	if digits == "" {
		return Known(strings.ToLower(raw))
	}

	if explicit {
		return Known("+" + digits)
	}
	return Known(canonCountryCode(defaultCountryCode) + digits)
}

// AddressSet canonicaliza un conjunto de participantes: cada número se
// normaliza y el conjunto se ordena para eliminar la sensibilidad al orden.
// Un participante malformado envenena el set completo a unknown.
func AddressSet(addrs []string, defaultCountryCode string) Value {
	if len(addrs) == 0 {
		return Known("")
	}

	canon := make([]string, 0, len(addrs))
	for _, a := range addrs {
		v := Phone(a, defaultCountryCode)
		if !v.IsKnown() {
			return Unknown()
		}
		canon = append(canon, v.Raw())
	}
	sort.Strings(canon)
	return Known(strings.Join(canon, "~"))
}

// Timestamp canonicaliza un epoch. Sin tolerancia el valor canónico es el
// entero crudo; con tolerancia los epochs con magnitud de milisegundos se
// truncan a segundos, de modo que codificaciones en segundos y milisegundos
// del mismo instante comparen iguales.
func Timestamp(raw string, truncateMillis bool) Value {
	ts, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return Unknown()
	}

	if truncateMillis && ts >= millisThreshold {
		ts /= 1000
	}
	return Known(strconv.FormatInt(ts, 10))
}

// Body canonicaliza un texto de mensaje.
func Body(raw string, collapseWhitespace bool) string {
	if collapseWhitespace {
		return strings.Join(strings.Fields(raw), " ")
	}
	return raw
}

// Protocol canonicaliza un campo de protocolo entero (type / m_type).
func Protocol(raw string) Value {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Unknown()
	}
	return Known(strconv.Itoa(n))
}

// PayloadKey deriva la clave canónica de un payload binario. Se usa el hash
// completo: la igualdad de payloads decide merges y no puede arriesgar
// colisiones.
func PayloadKey(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

// PartsKey deriva la clave canónica del multiset de payloads de un record:
// hashes ordenados, insensible al orden de los parts. Ausente si ningún part
// tiene datos, distinto de un multiset vacío presente.
func PartsKey(parts []domain.DataPart) domain.Field[string] {
	hashes := make([]string, 0, len(parts))
	for _, p := range parts {
		if data, ok := p.Data.Get(); ok {
			hashes = append(hashes, PayloadKey(data))
		}
	}
	if len(hashes) == 0 {
		return domain.Absent[string]()
	}
	sort.Strings(hashes)
	return domain.Present(strings.Join(hashes, "+"))
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func canonCountryCode(cc string) string {
	cc = strings.TrimSpace(cc)
	digits := keepDigits(cc)
	if digits == "" {
		return "+1"
	}
	return "+" + digits
}
