//go:build tilegrid_software

package tilegrid

// DefaultBackend returns the backend used for BackendAuto. This build was
// compiled with the tilegrid_software tag.
func DefaultBackend() Backend { return BackendSoftware }
