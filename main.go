package main

import "github.com/graft-dev/graft/cmd"

func main() {
	cmd.Execute()
}
