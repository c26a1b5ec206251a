package main

import "mercado/cmd"

func main() {
	cmd.Execute()
}
