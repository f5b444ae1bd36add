// internal/core/normalize/smil.go
package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// El SMIL de los MMS no se compara como texto: cada agente de backup lo
// reformatea a su manera (whitespace, orden de atributos, mayúsculas,
// prólogos XML). Se canonicaliza a la secuencia ordenada de asociaciones
// (región, part referenciado) que codifica, de modo que dos descriptores
// textualmente distintos del mismo layout colapsen a la misma clave.
//
// El parser es el de html de golang.org/x/net: tolera el markup descuidado
// que emiten los teléfonos (tags sin cerrar, mayúsculas mezcladas, entidades
// sueltas) donde un parser XML estricto rechazaría el documento entero.

// smilMediaTags son los elementos SMIL que referencian un part.
var smilMediaTags = map[string]bool{
	"img":   true,
	"video": true,
	"audio": true,
	"text":  true,
	"ref":   true,
}

// SmilKey canonicaliza un descriptor SMIL a su clave comparable.
// Entrada no-SMIL o no parseable canonicaliza a unknown.
func SmilKey(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unknown()
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return Unknown()
	}

	if !containsElement(doc, "smil") {
		return Unknown()
	}

	assocs := collectAssociations(doc)
	return Known(strings.Join(assocs, ";"))
}

// containsElement busca un elemento por nombre en el árbol parseado.
func containsElement(n *html.Node, tag string) bool {
	if n.Type == html.ElementNode && n.Data == tag {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsElement(c, tag) {
			return true
		}
	}
	return false
}

// collectAssociations recorre el árbol en orden de documento y extrae las
// referencias región→part de los elementos de media. Los valores por defecto
// (región vacía) y el orden de atributos no distinguen descriptores.
func collectAssociations(n *html.Node) []string {
	var out []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && smilMediaTags[node.Data] {
			var region, src string
			for _, a := range node.Attr {
				switch a.Key {
				case "region":
					region = strings.TrimSpace(a.Val)
				case "src":
					src = strings.TrimSpace(a.Val)
				}
			}
			if src != "" {
				out = append(out, region+"->"+src)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return out
}
