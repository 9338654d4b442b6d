package main

import (
	// Import the cmd directory with root.go
	"wxcli/cmd"
)

func main() {
	// Call the root command
	cmd.Execute()
}
