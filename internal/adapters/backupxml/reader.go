// internal/adapters/backupxml/reader.go
package backupxml

import (
	"context"
	"encoding/xml"
	"io"
	"os"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/platform/errors"
	"smsdedup/internal/platform/logx"
)

// rootTag es el elemento raíz del formato de backup SMS B&R.
const rootTag = "smses"

// Reader implementa ports.Reader sobre el formato XML de backup.
// Parsea por streaming de tokens: los backups grandes no caben cómodamente
// como DOM y solo necesitamos atributos y estructura.
type Reader struct {
	logger logx.Logger

	// root atributos del elemento raíz del primer archivo leído, para que
	// el writer los pueda re-emitir
	root *domain.Element
}

// NewReader crea un reader de backups XML.
func NewReader(logger logx.Logger) *Reader {
	return &Reader{
		logger: logger.With("component", "backupxml.reader"),
	}
}

// Root retorna el elemento raíz (sin hijos) del primer archivo leído,
// o nil si todavía no se leyó ninguno.
func (r *Reader) Root() *domain.Element {
	return r.root
}

// Read parsea un archivo de backup y retorna sus records en orden de
// documento. Los índices son locales al archivo; el orquestador los
// reasigna al concatenar.
func (r *Reader) Read(ctx context.Context, path string) ([]*domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "input %s: %v", path, err)
	}
	defer f.Close()

	records, root, err := r.decode(ctx, xml.NewDecoder(f))
	if err != nil {
		return nil, errors.Wrapf(err, "input %s", path)
	}

	if r.root == nil {
		r.root = root
	}

	r.logger.Debug("parsed backup", "path", path, "records", len(records))
	return records, nil
}

func (r *Reader) decode(ctx context.Context, dec *xml.Decoder) ([]*domain.Record, *domain.Element, error) {
	var root *domain.Element
	var records []*domain.Record

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrMalformedDocument, err.Error())
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if root == nil {
			if start.Name.Local != rootTag {
				return nil, nil, errors.Wrapf(errors.ErrMalformedDocument,
					"expected root element %q, got %q", rootTag, start.Name.Local)
			}
			root = &domain.Element{Tag: start.Name.Local, Attrs: attrList(start.Attr)}
			continue
		}

		// Hijo directo de la raíz: debe ser un mensaje
		if !domain.Kind(start.Name.Local).IsValid() {
			return nil, nil, errors.Wrapf(errors.ErrUnexpectedTag,
				"element %q directly under root", start.Name.Local)
		}

		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		el, err := parseElement(dec, start)
		if err != nil {
			return nil, nil, err
		}

		rec := domain.NewRecord(el, len(records))
		if rec.IsEmpty() {
			return nil, nil, errors.Wrapf(errors.ErrEmptyRecord,
				"%s at position %d has no comparable fields", el.Tag, len(records))
		}
		records = append(records, rec)
	}

	if root == nil {
		return nil, nil, errors.Wrap(errors.ErrMalformedDocument, "no root element")
	}

	return records, root, nil
}

// parseElement consume el subárbol de start y lo materializa como Element,
// preservando el orden de atributos e hijos. El texto intermedio se descarta:
// el formato de backup lleva todo en atributos.
func parseElement(dec *xml.Decoder, start xml.StartElement) (*domain.Element, error) {
	el := &domain.Element{
		Tag:   start.Name.Local,
		Attrs: attrList(start.Attr),
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(errors.ErrMalformedDocument, err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)

		case xml.EndElement:
			return el, nil
		}
	}
}

func attrList(attrs []xml.Attr) []domain.Attr {
	out := make([]domain.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, domain.Attr{Name: a.Name.Local, Value: a.Value})
	}
	return out
}
