package main

import (
	"github.com/mj1618/winswitch/cmd"
	_ "github.com/mj1618/winswitch/internal/platform/x11"
)

func main() {
	cmd.Execute()
}
