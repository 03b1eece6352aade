package ui

import (
	"strings"

	"github.com/rivo/tview"

	"github.com/stefanwatt/mini.files/pkg/explorer"
)

var _ explorer.Buffer = (*bufferPanel)(nil)

// bufferPanel backs one directory view with an editable tview text
// area. IsModified compares the area's text against what the explorer
// last rendered into it.
type bufferPanel struct {
	*tview.TextArea
	path     string
	rendered string
}

func newBufferPanel(path string) *bufferPanel {
	p := &bufferPanel{
		TextArea: tview.NewTextArea(),
		path:     path,
	}
	p.SetBorder(true)
	p.SetTitle(" " + path + " ")
	return p
}

func (p *bufferPanel) Render(lines []string) {
	p.rendered = strings.Join(lines, "\n")
	p.SetText(p.rendered, false)
}

func (p *bufferPanel) ReadLines() []string {
	text := p.GetText()
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func (p *bufferPanel) IsModified() bool {
	return p.GetText() != p.rendered
}
