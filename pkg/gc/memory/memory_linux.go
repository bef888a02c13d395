//go:build linux

package memory

import "golang.org/x/sys/unix"

// totalMemory is RAM plus swap, the most the kernel will commit to us.
func totalMemory() uint64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return (uint64(info.Totalram) + uint64(info.Totalswap)) * unit
}
