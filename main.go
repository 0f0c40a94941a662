package main

import "github.com/gatortrader/gatortrader-api/cmd"

func main() {
	cmd.Execute()
}
