package pslint

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
)

// showScript prints the synthesized PowerShell script, syntax-highlighted
// when writing to a terminal with color enabled.
func showScript(w io.Writer, scriptText string) {
	if !flagNoColor && os.Getenv("NO_COLOR") == "" {
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if err := quick.Highlight(w, scriptText, "powershell", "terminal256", "monokai"); err == nil {
				return
			}
		}
	}
	fmt.Fprint(w, scriptText)
}
