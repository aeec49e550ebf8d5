package main

import "github.com/Dicklesworthstone/devpanel/internal/cli"

func main() {
	cli.Execute()
}
