//go:build freebsd || openbsd || dragonfly || netbsd

package memory

import "golang.org/x/sys/unix"

func totalMemory() uint64 {
	val, err := unix.SysctlUint64("hw.physmem")
	if err != nil {
		return 0
	}
	return val
}
