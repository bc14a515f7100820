package main

import "github.com/spotkit/spotkit/cmd"

func main() {
	cmd.Execute()
}
