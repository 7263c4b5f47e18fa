package main

import "fitctl/cmd"

func main() {
	cmd.Execute()
}
