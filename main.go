package main

import "github.com/opentaxa/taxtree/cmd"

func main() {
	cmd.Execute()
}
