package main

import (
	"os"

	"git.home.luguber.info/inful/sitegraph/cmd/sitegraph/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
