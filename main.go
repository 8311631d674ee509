package main

import "github.com/mkret/promptsmith/cmd"

func main() {
	cmd.Execute()
}
