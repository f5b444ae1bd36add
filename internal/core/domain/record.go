// internal/core/domain/record.go
package domain

import (
	"encoding/base64"
	"strings"
)

// Element es la forma opaca de una entrada de backup ya parseada: atributos
// en orden de documento más hijos anidados. Los adapters lo construyen y lo
// vuelven a serializar; el engine nunca lo inspecciona directamente.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
}

// Attr es un atributo nombre/valor en orden de documento.
type Attr struct {
	Name  string
	Value string
}

// Attr retorna el valor de un atributo por nombre.
// Los agentes de backup a veces rellenan campos con el literal "null";
// eso cuenta como ausente.
func (e *Element) Attr(name string) Field[string] {
	for _, a := range e.Attrs {
		if a.Name == name {
			if a.Value == "null" {
				return Absent[string]()
			}
			return Present(a.Value)
		}
	}
	return Absent[string]()
}

// SetAttr reemplaza el valor de un atributo existente (para reescritura de
// count/_id en el writer). No añade atributos nuevos.
func (e *Element) SetAttr(name, value string) bool {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return true
		}
	}
	return false
}

// Walk recorre el elemento y todos sus descendientes en orden de documento.
func (e *Element) Walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// DataPart es un payload binario de un MMS (imagen, audio, etc.).
type DataPart struct {
	// Name identificador del part (atributo cl o name)
	Name string

	// ContentType tipo MIME del payload
	ContentType string

	// Data bytes del payload; ausente es distinto de presente-pero-vacío
	Data Field[[]byte]
}

// Record es un mensaje extraído de un backup. Se construye una vez por
// elemento parseado y vive inmutable durante la normalización y la
// comparación; las formas canónicas son valores derivados, nunca se
// escriben de vuelta sobre el record.
type Record struct {
	// Index posición en la secuencia combinada de entrada (desempate estable)
	Index int

	// Kind variante del mensaje
	Kind Kind

	// Date timestamp epoch crudo; la unidad (segundos o milisegundos) es ambigua
	Date Field[string]

	// Addresses participantes; semánticamente un set, el orden no significa nada
	Addresses []string

	// Protocol campo de protocolo crudo (type en SMS, m_type en MMS)
	Protocol Field[string]

	// Body texto del mensaje
	Body Field[string]

	// Subject asunto (algunos agentes lo emiten, otros no)
	Subject Field[string]

	// Parts payloads adjuntos (solo MMS)
	Parts []DataPart

	// Smil descriptor de layout crudo (solo MMS); redundante con Parts
	Smil Field[string]

	// Origin elemento parseado original, para re-emisión literal
	Origin *Element
}

// addressDelimiter separa múltiples participantes dentro de un atributo
// address; el orden dentro del campo varía según el agente de backup.
const addressDelimiter = "~"

// NewRecord construye la vista Record sobre un elemento parseado.
// index es la posición del elemento en la secuencia combinada de entrada.
func NewRecord(el *Element, index int) *Record {
	r := &Record{
		Index:  index,
		Kind:   Kind(el.Tag),
		Date:   el.Attr("date"),
		Origin: el,
	}

	if addr, ok := el.Attr("address").Get(); ok {
		r.Addresses = splitAddresses(addr)
	}

	switch r.Kind {
	case KindMMS:
		r.Protocol = el.Attr("m_type")
	default:
		r.Protocol = el.Attr("type")
	}

	r.Subject = el.Attr("subject")

	var texts []string
	if body, ok := el.Attr("body").Get(); ok {
		if looksLikeSmil(body) {
			r.Smil = Present(body)
		} else {
			texts = append(texts, body)
		}
	}

	// MMS: los parts llevan el texto, los payloads y el SMIL; los addr
	// llevan participantes adicionales
	el.Walk(func(child *Element) {
		switch child.Tag {
		case "part":
			r.collectPart(child, &texts)
		case "addr":
			if addr, ok := child.Attr("address").Get(); ok {
				r.Addresses = append(r.Addresses, splitAddresses(addr)...)
			}
		}
	})

	if len(texts) > 0 {
		r.Body = Present(strings.Join(texts, "\n"))
	}

	return r
}

// collectPart clasifica un elemento part: SMIL, texto o payload binario.
func (r *Record) collectPart(part *Element, texts *[]string) {
	ct := part.Attr("ct").OrZero()

	if text, ok := part.Attr("text").Get(); ok {
		if strings.EqualFold(ct, "application/smil") || looksLikeSmil(text) {
			if !r.Smil.IsPresent() {
				r.Smil = Present(text)
			}
		} else {
			*texts = append(*texts, text)
		}
	}

	if data, ok := part.Attr("data").Get(); ok {
		name := part.Attr("cl").OrZero()
		if name == "" {
			name = part.Attr("name").OrZero()
		}
		r.Parts = append(r.Parts, DataPart{
			Name:        name,
			ContentType: ct,
			Data:        Present(decodePartData(data)),
		})
	}
}

// HasData indica si el record tiene al menos un payload presente.
func (r *Record) HasData() bool {
	for _, p := range r.Parts {
		if p.Data.IsPresent() {
			return true
		}
	}
	return false
}

// IsEmpty indica si el record no aporta ningún campo comparable.
// Un backup que produce esto está roto y debe tratarse como error fatal.
func (r *Record) IsEmpty() bool {
	return !r.Date.IsPresent() &&
		len(r.Addresses) == 0 &&
		!r.Protocol.IsPresent() &&
		!r.Body.IsPresent() &&
		!r.Subject.IsPresent() &&
		len(r.Parts) == 0 &&
		!r.Smil.IsPresent()
}

// splitAddresses separa un campo address multi-participante.
func splitAddresses(raw string) []string {
	parts := strings.Split(raw, addressDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// decodePartData decodifica el payload base64 de un part. Si la
// decodificación falla, se conservan los bytes crudos: un payload malformado
// solo debe igualar a otro idénticamente malformado, nunca perderse.
func decodePartData(raw string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw)); err == nil {
		return decoded
	}
	return []byte(raw)
}

// looksLikeSmil detecta descriptores SMIL incrustados en campos de texto.
// Algunos agentes envuelven el SMIL con declaración XML o DOCTYPE.
func looksLikeSmil(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<?xml") {
		if i := strings.Index(s, "?>"); i >= 0 {
			s = strings.TrimSpace(s[i+len("?>"):])
		}
	}
	if strings.HasPrefix(s, "<!DOCTYPE") {
		if i := strings.Index(s, ">"); i >= 0 {
			s = strings.TrimSpace(s[i+len(">"):])
		}
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<smil") && strings.HasSuffix(lower, "</smil>")
}
