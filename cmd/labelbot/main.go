// Package main is the entry point for the labelbot CLI.
package main

import (
	"github.com/ossmaint/labelbot/cmd/labelbot/commands"
)

func main() {
	commands.Execute()
}
