package main

import "github.com/deffatest/unity-bridge/cmd/unity-packager/cmd"

func main() {
	cmd.Execute()
}
