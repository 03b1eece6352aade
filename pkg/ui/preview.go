package ui

import (
	"github.com/rivo/tview"

	"github.com/stefanwatt/mini.files/pkg/chroma2tcell"
	"github.com/stefanwatt/mini.files/pkg/fsutils"
)

// previewReadLimit bounds how much of a file the preview pane reads.
const previewReadLimit = 10 * 1024

type previewPanel struct {
	*tview.TextView
}

func newPreviewPanel() *previewPanel {
	p := &previewPanel{
		TextView: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false).
			SetScrollable(true),
	}
	p.SetBorder(true)
	p.SetTitle(" Preview ")
	return p
}

func (p *previewPanel) ShowFile(path string) {
	data, err := fsutils.ReadFileData(path, previewReadLimit)
	if err != nil {
		p.SetDynamicColors(false)
		p.SetText(err.Error())
		return
	}
	text, colorized := chroma2tcell.HighlightFile(path, string(data))
	p.SetDynamicColors(colorized)
	p.SetText(text)
	p.SetTitle(" " + path + " ")
}

func (p *previewPanel) Clear() {
	p.SetText("")
	p.SetTitle(" Preview ")
}
