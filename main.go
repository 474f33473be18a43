package main

import (
	"github.com/kadaan/lttb/cmd"
)

func main() {
	cmd.Root.Execute()
}
