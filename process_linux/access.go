//go:build linux

package process_linux

import (
	"errors"
	"io/fs"

	"procinfo/process"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// checkAccess verifies the procfs root can be listed and traversed.
func checkAccess(root string) error {
	if err := unix.Access(root, unix.R_OK|unix.X_OK); err != nil {
		return classify(root, err)
	}
	return nil
}

// classify maps an error reading root onto the process error kinds.
func classify(root string, err error) error {
	if errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) || errors.Is(err, fs.ErrPermission) {
		return pkgerrors.Wrapf(process.ErrAccessDenied, "%s: %v", root, err)
	}
	return pkgerrors.Wrapf(process.ErrEnumerationFailed, "%s: %v", root, err)
}
