package main

import "github.com/ValentinKolb/roads/cmd"

func main() {
	cmd.Execute()
}
