package main

import "pathsync/cmd"

func main() {
	cmd.Execute()
}
