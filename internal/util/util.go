//go:build !windows

package util

// IsRunFromGUI always reports false outside Windows; there is no file
// manager double-click flow to detect.
func IsRunFromGUI() bool {
	return false
}
