package main

import "github.com/kozaktomas/photo-archive/cmd"

func main() {
	cmd.Execute()
}
