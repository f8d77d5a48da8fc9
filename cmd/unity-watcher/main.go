package main

import "github.com/deffatest/unity-bridge/cmd/unity-watcher/cmd"

func main() {
	cmd.Execute()
}
