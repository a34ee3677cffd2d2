package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// Surface acquisition failures, matched with errors.Is.
var (
	// ErrSurfaceLost means the surface must be reconfigured before the next frame.
	ErrSurfaceLost = errors.New("surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window and must be reconfigured.
	ErrSurfaceOutdated = errors.New("surface outdated")

	// ErrSurfaceTimeout means no image became available in time; the frame is skipped.
	ErrSurfaceTimeout = errors.New("surface acquisition timed out")

	// ErrOutOfMemory is fatal: the application must exit.
	ErrOutOfMemory = errors.New("gpu out of memory")

	// ErrRebuildFailed means a dirty shape could not be uploaded. The frame is abandoned and
	// the shape stays dirty, so the next frame retries the upload.
	ErrRebuildFailed = errors.New("draw buffer rebuild failed")
)

// ClassifySurfaceError wraps a surface acquisition error with the matching sentinel.
// The wgpu binding reports the acquisition status only through the error text, so the
// classification matches on the status name. Unknown errors and nil are returned unchanged.
//
// Parameters:
//   - err: the error from acquiring the surface texture
//
// Returns:
//   - error: err wrapped with ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceTimeout or ErrOutOfMemory
func ClassifySurfaceError(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceTimeout, ErrOutOfMemory} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	msg := strings.NewReplacer("_", "", " ", "", "-", "").Replace(strings.ToLower(err.Error()))
	switch {
	case strings.Contains(msg, "outofmemory"):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case strings.Contains(msg, "outdated"):
		return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	case strings.Contains(msg, "lost"):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timedout"):
		return fmt.Errorf("%w: %w", ErrSurfaceTimeout, err)
	}
	return err
}

// IsSurfaceRecoverable reports whether a reconfigure on the next frame fixes err.
//
// Parameters:
//   - err: a classified error
//
// Returns:
//   - bool: true for lost or outdated surfaces
func IsSurfaceRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated)
}
