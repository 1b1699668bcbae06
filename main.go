package main

import "klon/cmd"

func main() {
	cmd.Execute()
}
