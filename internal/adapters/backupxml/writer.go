// internal/adapters/backupxml/writer.go
package backupxml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/platform/errors"
	"smsdedup/internal/platform/logx"
)

// xmlDeclaration es la declaración exacta que esperan las utilidades de
// restauración; encoding y standalone no son opcionales.
const xmlDeclaration = "<?xml version='1.0' encoding='UTF-8' standalone='yes'?>\n"

// Writer implementa ports.Writer re-emitiendo los elementos originales de
// los supervivientes. Solo se reescriben el count de la raíz y los _id
// secuenciales; sin ellos las utilidades de restauración consideran el
// archivo corrupto.
type Writer struct {
	root   *domain.Element
	logger logx.Logger
}

// NewWriter crea un writer de backups. root es el elemento raíz capturado
// por el reader; si es nil se sintetiza una raíz mínima.
func NewWriter(root *domain.Element, logger logx.Logger) *Writer {
	return &Writer{
		root:   root,
		logger: logger.With("component", "backupxml.writer"),
	}
}

// Write serializa los supervivientes a path.
func (w *Writer) Write(path string, result *domain.RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "output %s: %v", path, err)
	}
	defer f.Close()

	root := w.outputRoot(len(result.Survivors))
	renumberIDs(root, result.Survivors)

	b := bufio.NewWriter(f)
	b.WriteString(xmlDeclaration)

	openElement(b, root, 0, len(result.Survivors) == 0)
	for _, rec := range result.Survivors {
		writeElement(b, rec.Origin, 1)
	}
	if len(result.Survivors) > 0 {
		fmt.Fprintf(b, "</%s>\n", root.Tag)
	}

	if err := b.Flush(); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "output %s: %v", path, err)
	}

	w.logger.Debug("wrote backup", "path", path, "records", len(result.Survivors))
	return nil
}

// outputRoot clona la raíz capturada (o sintetiza una) con el count final.
func (w *Writer) outputRoot(total int) *domain.Element {
	root := &domain.Element{Tag: rootTag}
	if w.root != nil {
		root.Tag = w.root.Tag
		root.Attrs = append([]domain.Attr(nil), w.root.Attrs...)
	}

	if !root.SetAttr("count", strconv.Itoa(total)) {
		root.Attrs = append(root.Attrs, domain.Attr{Name: "count", Value: strconv.Itoa(total)})
	}
	return root
}

// renumberIDs reasigna _id secuenciales sobre la raíz y todos los
// descendientes de los supervivientes, en orden de documento.
func renumberIDs(root *domain.Element, survivors []*domain.Record) {
	running := 0
	assign := func(el *domain.Element) {
		if el.SetAttr("_id", strconv.Itoa(running)) {
			running++
		}
	}

	assign(root)
	for _, rec := range survivors {
		rec.Origin.Walk(assign)
	}
}

// openElement emite la etiqueta de apertura de la raíz (auto-cerrada si no
// hay supervivientes).
func openElement(b *bufio.Writer, el *domain.Element, depth int, selfClose bool) {
	writeIndent(b, depth)
	b.WriteString("<" + el.Tag)
	writeAttrs(b, el.Attrs)
	if selfClose {
		b.WriteString(" />\n")
		return
	}
	b.WriteString(">\n")
}

// writeElement serializa un elemento y sus hijos con sangrado de dos
// espacios, el formato que emiten los agentes de backup.
func writeElement(b *bufio.Writer, el *domain.Element, depth int) {
	writeIndent(b, depth)
	b.WriteString("<" + el.Tag)
	writeAttrs(b, el.Attrs)

	if len(el.Children) == 0 {
		b.WriteString(" />\n")
		return
	}

	b.WriteString(">\n")
	for _, child := range el.Children {
		writeElement(b, child, depth+1)
	}
	writeIndent(b, depth)
	fmt.Fprintf(b, "</%s>\n", el.Tag)
}

func writeAttrs(b *bufio.Writer, attrs []domain.Attr) {
	for _, a := range attrs {
		b.WriteString(" " + a.Name + `="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteString(`"`)
	}
}

// escapeAttr escapa un valor de atributo para re-emisión XML.
func escapeAttr(v string) string {
	var sb strings.Builder
	if err := xml.EscapeText(&sb, []byte(v)); err != nil {
		return v
	}
	return sb.String()
}

func writeIndent(b *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}
