package main

import "github.com/deffatest/unity-bridge/cmd/unity-setup/cmd"

func main() {
	cmd.Execute()
}
