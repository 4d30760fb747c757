package main

import "github.com/projbank/projbank/cmd"

func main() {
	cmd.Execute()
}
