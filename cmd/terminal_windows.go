package cmd

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"

	isatty "github.com/mattn/go-isatty"
)

// relaunchGuardVariable prevents HandleTerminalCompatibility from relaunching
// itself indefinitely should the relaunched process somehow still detect
// itself as a mintty console — a fork bomb is a worse failure mode than a
// clear error.
const relaunchGuardVariable = "MANDERROW_INSTALLER_WINPTY_RELAUNCHED"

// HandleTerminalCompatibility relaunches the current process inside winpty
// if it detects it's running inside a mintty-based console (e.g. Git
// Bash), which Go's own console handling doesn't support directly.
func HandleTerminalCompatibility() {
	if !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return
	}
	if os.Getenv(relaunchGuardVariable) == "1" {
		Fatal(errors.New("already relaunched inside winpty but still detected as a mintty console"))
	}

	winpty, err := exec.LookPath("winpty")
	if err != nil {
		Fatal(errors.New("running inside a mintty console and unable to locate winpty"))
	}

	executable, err := os.Executable()
	if err != nil {
		Fatal(errors.Wrap(err, "running inside a mintty console and unable to locate the current executable"))
	}

	arguments := append([]string{executable}, os.Args[1:]...)
	command := exec.Command(winpty, arguments...)
	command.Env = append(os.Environ(), relaunchGuardVariable+"=1")
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr

	if err := command.Run(); err != nil && command.ProcessState == nil {
		Fatal(errors.Wrap(err, "failed to relaunch inside winpty"))
	}
	os.Exit(command.ProcessState.ExitCode())
}
