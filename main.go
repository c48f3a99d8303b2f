package main

import "github.com/deltaddl/deltaddl/cmd"

func main() {
	cmd.Execute()
}
