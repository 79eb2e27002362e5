package main

import "sectionbot/cmd"

func main() {
	cmd.Execute()
}
