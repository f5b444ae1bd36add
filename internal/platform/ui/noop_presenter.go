// internal/platform/ui/noop_presenter.go
package ui

import (
	"smsdedup/internal/core/domain"
	"smsdedup/internal/core/ports"
)

// NoopPresenter es una implementación vacía del Presenter
// que no produce ninguna salida. Útil para modo quiet o headless.
type NoopPresenter struct{}

// NewNoopPresenter crea una instancia del presenter sin salida.
func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

// Start no hace nada.
func (n *NoopPresenter) Start(info ports.RunInfo) {}

// Phase no hace nada.
func (n *NoopPresenter) Phase(name string, detail string) {}

// Summary no hace nada.
func (n *NoopPresenter) Summary(result *domain.RunResult) {}
