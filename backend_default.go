//go:build !tilegrid_software

package tilegrid

// DefaultBackend returns the backend used for BackendAuto. Build with the
// tilegrid_software tag to default to the software compositor.
func DefaultBackend() Backend { return BackendGPU }
