package main

import "github.com/katalvlaran/art2a/cmd/art2a/commands"

func main() {
	commands.Execute()
}
