// internal/testutil/fixtures.go
package testutil

import "smsdedup/internal/core/domain"

// Element construye un elemento con atributos en pares nombre/valor.
func Element(tag string, attrPairs ...string) *domain.Element {
	el := &domain.Element{Tag: tag}
	for i := 0; i+1 < len(attrPairs); i += 2 {
		el.Attrs = append(el.Attrs, domain.Attr{Name: attrPairs[i], Value: attrPairs[i+1]})
	}
	return el
}

// SMS construye un record sms básico.
func SMS(index int, date, address, body string) *domain.Record {
	return domain.NewRecord(Element("sms",
		"protocol", "0",
		"address", address,
		"date", date,
		"type", "1",
		"body", body,
	), index)
}

// SMSFrom construye un record sms con atributos arbitrarios.
func SMSFrom(index int, attrPairs ...string) *domain.Record {
	return domain.NewRecord(Element("sms", attrPairs...), index)
}

// MMS construye un record mms con texto y payload base64 opcionales.
func MMS(index int, date, address, text, dataB64 string) *domain.Record {
	el := Element("mms", "date", date, "address", address, "m_type", "132")

	parts := Element("parts")
	if text != "" {
		parts.Children = append(parts.Children,
			Element("part", "seq", "0", "ct", "text/plain", "name", "null", "text", text))
	}
	if dataB64 != "" {
		parts.Children = append(parts.Children,
			Element("part", "seq", "1", "ct", "image/jpeg", "cl", "image.jpg", "data", dataB64))
	}
	el.Children = append(el.Children, parts)

	return domain.NewRecord(el, index)
}

// MMSWithSmil construye un record mms con descriptor SMIL además del payload.
func MMSWithSmil(index int, date, address, smil, dataB64 string) *domain.Record {
	el := Element("mms", "date", date, "address", address, "m_type", "132")

	parts := Element("parts")
	parts.Children = append(parts.Children,
		Element("part", "seq", "-1", "ct", "application/smil", "name", "smil.xml", "text", smil))
	if dataB64 != "" {
		parts.Children = append(parts.Children,
			Element("part", "seq", "0", "ct", "image/jpeg", "cl", "image.jpg", "data", dataB64))
	}
	el.Children = append(el.Children, parts)

	return domain.NewRecord(el, index)
}
