package main

import "github.com/example/colegio/cmd"

func main() {
	cmd.Execute()
}
