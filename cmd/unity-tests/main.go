package main

import "github.com/deffatest/unity-bridge/cmd/unity-tests/cmd"

func main() {
	cmd.Execute()
}
