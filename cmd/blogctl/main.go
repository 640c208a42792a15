package main

import "blog/internal/cli"

func main() {
	cli.Execute()
}
