package main

import "github.com/deffatest/unity-bridge/cmd/unity-submitter/cmd"

func main() {
	cmd.Execute()
}
