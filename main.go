package main

import "github.com/aita/cms/cmd"

func main() {
	cmd.Execute()
}
