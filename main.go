package main

import "github.com/stuttgart-things/banner/cmd"

func main() {
	cmd.Execute()
}
