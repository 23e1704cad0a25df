package main

import "xc60-deals/internal/cli"

func main() {
	cli.Execute()
}
