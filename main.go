package main

import "id-check/cmd"

func main() {
	cmd.Execute()
}
