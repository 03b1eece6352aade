// Package chroma2tcell renders chroma tokens as tview color tags.
package chroma2tcell

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var getStyle = styles.Get

var getFallbackStyle = func() *chroma.Style {
	return styles.Fallback
}

const defaultStyle = "dracula"

// Colorize tokenizes text with the given lexer and wraps each colored
// token in tview [hex] tags.
func Colorize(text, styleName string, lexer chroma.Lexer) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", err
	}

	style := getStyle(styleName)
	if style == nil {
		style = getFallbackStyle()
	}

	var sb strings.Builder
	for _, token := range iterator.Tokens() {
		color := style.Get(token.Type)
		if color.IsZero() {
			sb.WriteString(token.Value)
			continue
		}
		sb.WriteString("[" + color.Colour.String() + "]")
		sb.WriteString(token.Value)
		sb.WriteString("[-]")
	}

	return sb.String(), nil
}

// HighlightFile colorizes file content, matching the lexer by file
// name. Content with no matching lexer is returned untouched and
// ok=false, so callers can disable dynamic colors for it.
func HighlightFile(fileName, content string) (string, bool) {
	lexer := lexers.Match(fileName)
	if lexer == nil {
		return content, false
	}
	colorized, err := Colorize(content, defaultStyle, lexer)
	if err != nil {
		return content, false
	}
	return colorized, true
}
