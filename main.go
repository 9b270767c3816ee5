package main

import "github.com/gaurav-prasanna/wikicorpus/cmd"

func main() {
	cmd.Execute()
}
