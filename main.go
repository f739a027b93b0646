package main

import "github.com/luthersystems/pairlisp/cmd"

func main() {
	cmd.Execute()
}
