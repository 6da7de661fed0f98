package main

import "ar-sync/cmd"

func main() {
	cmd.Execute()
}
