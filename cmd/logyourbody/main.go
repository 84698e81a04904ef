package main

import "logyourbody/internal/cli"

func main() {
	cli.Execute()
}
