package main

import "github.com/alexiusacademia/gotimber/cmd"

func main() {
	cmd.Execute()
}
