package main

import "github.com/totalconf/core/cmd"

func main() {
	cmd.Execute()
}
