//go:build !linux

package main

import (
	"runtime"

	"procinfo/process"

	"github.com/pkg/errors"
)

func procfsTable(string) process.ProcessTable {
	return &process.StaticTable{
		Err: errors.Wrapf(process.ErrEnumerationFailed, "procfs source is not supported on %s", runtime.GOOS),
	}
}
