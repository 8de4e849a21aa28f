package main

import "github.com/KaramelBytes/cfbstats/cmd"

func main() {
	cmd.Execute()
}
