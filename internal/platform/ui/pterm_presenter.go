// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"smsdedup/internal/core/domain"
	"smsdedup/internal/core/ports"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar la cabecera, fases y la tabla final en la terminal.
type PTermPresenter struct {
	mu    sync.Mutex
	start time.Time
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm.
func NewPTermPresenter() *PTermPresenter {
	return &PTermPresenter{}
}

// Start muestra la cabecera de la ejecución.
func (p *PTermPresenter) Start(info ports.RunInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.start = time.Now()

	pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Println("smsdedup - Backup Deduplicator")

	pterm.Println()

	infoPanel := pterm.DefaultBox.
		WithTitle("Run Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan))

	content := fmt.Sprintf("Inputs:  %s\n", pterm.Cyan(strings.Join(info.Inputs, ", ")))
	content += fmt.Sprintf("Output:  %s\n", info.OutputPath)
	content += fmt.Sprintf("Log:     %s\n", info.LogPath)
	content += fmt.Sprintf("Workers: %d\n", info.Workers)
	content += fmt.Sprintf("Matching: %s", p.matchingModes(info))

	infoPanel.Println(content)
	pterm.Println()
}

// Phase reporta el avance de una fase.
func (p *PTermPresenter) Phase(name string, detail string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if detail != "" {
		pterm.Info.Printf("%s: %s\n", name, detail)
		return
	}
	pterm.Info.Println(name)
}

// Summary muestra la tabla final de conteos por tipo de mensaje.
func (p *PTermPresenter) Summary(result *domain.RunResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Println()

	for _, w := range result.Warnings {
		pterm.Warning.Printf("%s: %s\n", w.Stage, w.Message)
	}

	pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithData(summaryTableData(result)).
		Render()

	pterm.Println()
	if result.HasRemovals() {
		pterm.Success.Printf("Removed %d duplicate(s) in %s\n",
			result.TotalRemoved(), p.formatDuration(time.Since(p.start)))
	} else {
		pterm.Info.Printf("No duplicates found (%s)\n", p.formatDuration(time.Since(p.start)))
	}
}

// summaryTableData construye las filas de la tabla por kind, en orden estable.
func summaryTableData(result *domain.RunResult) pterm.TableData {
	data := pterm.TableData{
		{"Message Type", "Original Count", "Removed", "Deduplicated Count"},
	}

	kinds := make([]domain.Kind, 0, len(result.Counts))
	for k := range result.Counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, k := range kinds {
		c := result.Counts[k]
		data = append(data, []string{
			k.String(),
			fmt.Sprintf("%d", c.Original),
			fmt.Sprintf("%d", c.Removed),
			fmt.Sprintf("%d", c.Final),
		})
	}

	return data
}

// matchingModes resume los modos de comparación activos.
func (p *PTermPresenter) matchingModes(info ports.RunInfo) string {
	modes := make([]string, 0, 4)
	if info.Aggressive {
		modes = append(modes, pterm.Yellow("aggressive"))
	}
	if info.IgnoreMillis {
		modes = append(modes, "ignore-millis")
	}
	if info.IgnoreWhitespace {
		modes = append(modes, "ignore-whitespace")
	}
	if info.DefaultCountryCode != "" {
		modes = append(modes, "cc="+info.DefaultCountryCode)
	}
	if len(modes) == 0 {
		return pterm.Gray("strict")
	}
	return strings.Join(modes, ", ")
}

// formatDuration formatea una duración de manera legible.
func (p *PTermPresenter) formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
