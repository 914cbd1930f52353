package main

import (
	"github.com/mumoshu/multibranch/cmd"
)

func main() {
	cmd.MustRun()
}
