package main

import (
	"procinfo/process"
	"procinfo/process_linux"
)

func procfsTable(root string) process.ProcessTable {
	return process_linux.NewProcTable(root)
}
