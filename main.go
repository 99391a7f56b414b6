package main

import "github.com/dotcommander/regatta/cmd"

func main() {
	cmd.Execute()
}
