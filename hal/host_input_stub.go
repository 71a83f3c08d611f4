//go:build !cgo

package hal

func (in *hostInput) poll() {
	// No input without the window backend.
}
