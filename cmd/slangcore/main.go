package main

import "slangcore/cmd"

func main() {
	cmd.Execute()
}
