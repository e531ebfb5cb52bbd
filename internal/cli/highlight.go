package cli

import (
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	highlightFormatter = "terminal256"
	highlightStyle     = "monokai"
)

// writeCSS writes source, syntax-highlighted when color output is enabled.
func writeCSS(out io.Writer, source string) error {
	if colorEnabled() {
		if err := quick.Highlight(out, source, "css", highlightFormatter, highlightStyle); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(out, source)
	return err
}
