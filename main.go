package main

import "github.com/dirmaster/dirmaster-backend/cmd"

func main() {
	cmd.Init()
}
