package main

import "github.com/KaramelBytes/edaexport/cmd"

func main() {
	cmd.Execute()
}
