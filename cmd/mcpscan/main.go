package main

import "github.com/dmaher/mcpscan/internal/cli"

func main() {
	cli.Execute()
}
