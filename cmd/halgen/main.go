package main

import "github.com/embeddedkit/halgen/internal/cli"

func main() {
	cli.Execute()
}
