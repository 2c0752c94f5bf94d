//go:build linux && !tinygo

package main

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinThread locks the calling goroutine to its OS thread and that thread to
// cpu. Pinning is best effort: containers often refuse it.
func pinThread(cpu int) error {
	runtime.LockOSThread()
	if cpu < 0 || cpu >= runtime.NumCPU() {
		return nil
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
