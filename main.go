package main

import "github.com/quocvuong92/codemancer/cmd"

func main() {
	cmd.Execute()
}
