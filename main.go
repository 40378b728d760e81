package main

import "github.com/pders01/neuronest/cmd"

func main() {
	cmd.Execute()
}
