package main

import "github.com/aretesun/hey-there/internal/ui/cli"

func main() {
	cli.Execute()
}
