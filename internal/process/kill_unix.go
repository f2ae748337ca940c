//go:build !windows

// Package process terminates the headless browser's process tree.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chromium's renderer and GPU helpers down with it.
func KillProcessGroup(pid int) {
	// Errors ignored: the launcher kills the leader as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
