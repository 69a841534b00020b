package main

import "github.com/pfrederiksen/henley-schedule/internal/cli"

func main() {
	cli.Execute()
}
