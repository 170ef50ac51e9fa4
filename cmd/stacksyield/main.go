package main

import "github.com/vietddude/stacksyield/internal/cli"

func main() {
	cli.Execute()
}
