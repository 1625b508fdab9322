package main

import "github.com/tsvkit/tsvjoin/cmd"

func main() {
	cmd.Execute()
}
