package main

import "github.com/brogergvhs/isbnrange/cmd"

func main() {
	cmd.Execute()
}
