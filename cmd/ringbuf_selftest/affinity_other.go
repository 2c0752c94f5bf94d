//go:build !linux || tinygo

package main

import "runtime"

func pinThread(int) error {
	runtime.LockOSThread()
	return nil
}
