// internal/core/domain/kind.go
package domain

// Kind define la variante de un mensaje.
type Kind string

const (
	// KindSMS mensaje de texto plano
	KindSMS Kind = "sms"

	// KindMMS mensaje multimedia (adjuntos, múltiples participantes)
	KindMMS Kind = "mms"
)

// IsValid verifica si el kind es válido.
func (k Kind) IsValid() bool {
	switch k {
	case KindSMS, KindMMS:
		return true
	default:
		return false
	}
}

// String retorna la representación string del kind.
func (k Kind) String() string {
	return string(k)
}

// Kinds retorna todos los kinds conocidos en orden estable.
func Kinds() []Kind {
	return []Kind{KindSMS, KindMMS}
}
