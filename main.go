package main

import "github.com/kamusis/pandora-cli/cmd"

func main() {
	cmd.Execute()
}
