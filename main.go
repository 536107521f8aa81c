package main

import "github.com/tranvictor/jarvis-contacts/cmd"

func main() {
	cmd.Execute()
}
