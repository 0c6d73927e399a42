package main

import "github.com/mouse-blink/rtrim/cmd"

func main() {
	cmd.Execute()
}
