package main

import "github.com/sdkwire/sdkwire/internal/cli"

func main() {
	cli.Execute()
}
