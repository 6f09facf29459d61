package util

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// WaitForEnter keeps a console window open until the user presses Enter.
// It returns immediately when in is not an interactive terminal.
func WaitForEnter(in *os.File, out io.Writer) {
	if in == nil || !term.IsTerminal(int(in.Fd())) {
		return
	}
	_, _ = fmt.Fprint(out, "Press Enter to exit...")
	_, _ = bufio.NewReader(in).ReadString('\n')
}
