package main

import "github.com/Alturino/mallcart/cmd"

func main() {
	cmd.Start()
}
