package main

import (
	"github.com/patchview/patchview/cmd"
	"github.com/patchview/patchview/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", nil)

	cmd.Execute()
}
