// Command zvmrepl is an interactive terminal front end for the VM: it
// loads a module, runs it on a background goroutine, and streams its
// print/input traffic through a Bubble Tea model instead of a bare
// terminal, the way the teacher's story-runner wires a Z-machine
// interpreter's output channel into a TUI.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zata-lang/zvm/zmodule"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: zvmrepl <module.zvmb>")
		os.Exit(1)
	}

	mod, err := zmodule.Load(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	program := tea.NewProgram(newSessionModel(mod))
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error running program:", err)
		os.Exit(1)
	}
}
