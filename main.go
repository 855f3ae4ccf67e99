package main

import "github.com/mkirwin/exchange-arb/cmd"

func main() {
	cmd.Execute()
}
