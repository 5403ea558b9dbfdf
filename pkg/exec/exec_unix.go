//go:build linux || darwin

// Package exec replaces the current process with a command.
package exec

import (
	osexec "os/exec"
	"syscall"
)

// Exec runs command with args and env in place of the current process.
// It only returns if the command cannot be started.
func Exec(command string, args []string, env []string) error {
	argv0, err := osexec.LookPath(command)
	if err != nil {
		return err
	}

	argv := make([]string, 0, 1+len(args)) //nolint:gomnd
	argv = append(argv, command)
	argv = append(argv, args...)

	return syscall.Exec(argv0, argv, env)
}
