package main

import "github.com/skillscan/skillscan/cmd"

func main() {
	cmd.Execute()
}
