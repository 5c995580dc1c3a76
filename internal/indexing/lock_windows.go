//go:build windows

package indexing

import "syscall"

// isProcessRunning reports whether a handle to pid can be opened.
// os.FindProcess always succeeds on Windows so it cannot be used here.
func isProcessRunning(pid int) bool {
	const access = syscall.STANDARD_RIGHTS_READ | syscall.PROCESS_QUERY_INFORMATION | syscall.SYNCHRONIZE

	h, err := syscall.OpenProcess(access, false, uint32(pid))
	if err != nil {
		return false
	}
	syscall.CloseHandle(h)
	return true
}
