package main

import "ubuntu-package-status/internal/cli"

func main() {
	cli.Execute()
}
