package display

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

const renderWordWrap = 100

var (
	rendererMu sync.Mutex
	renderer   *glamour.TermRenderer
)

// InitRenderer prepares the markdown renderer, picking a style that suits
// the terminal background.
func InitRenderer() error {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(renderWordWrap),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	renderer = r
	return nil
}

// RenderMarkdown renders md for the terminal. It initializes the renderer
// on first use.
func RenderMarkdown(md string) (string, error) {
	rendererMu.Lock()
	r := renderer
	rendererMu.Unlock()

	if r == nil {
		if err := InitRenderer(); err != nil {
			return "", err
		}
		rendererMu.Lock()
		r = renderer
		rendererMu.Unlock()
	}
	return r.Render(md)
}
