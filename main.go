package main

import "github.com/bplemons/flow-metrics/cmd"

func main() {
	cmd.Execute()
}
