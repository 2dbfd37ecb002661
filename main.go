package main

import "mod-profile/cmd"

func main() {
	cmd.Execute()
}
