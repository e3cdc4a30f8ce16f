package main

import "github.com/ilanamermelstein/fiber-arts-finder/cmd"

func main() {
	cmd.Execute()
}
