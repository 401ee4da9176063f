package main

import "github.com/wisp-lang/wisp/cmd"

func main() {
	cmd.Execute()
}
