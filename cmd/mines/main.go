package main

import "github.com/vancomm/minefield/internal/cli"

func main() {
	cli.Execute()
}
