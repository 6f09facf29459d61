package main

import (
	"log/slog"
	"os"

	"github.com/Alia5/offsetgen/internal/util"
)

// launchedFromGUI is set when the binary was double-clicked or had a folder
// dropped on it, so main keeps the console open until Enter is pressed.
var launchedFromGUI bool

func init() {
	if !util.IsRunFromGUI() {
		return
	}
	launchedFromGUI = true

	// A folder dropped onto the executable arrives as the only argument.
	args := os.Args
	if len(args) == 2 {
		if info, err := os.Stat(args[1]); err == nil && info.IsDir() {
			slog.Info("Detected folder drop, scanning it instead of the default directory", "dir", args[1])
			os.Args = []string{args[0], "generate", "--dir", args[1]}
		}
	}
}
