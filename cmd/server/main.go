package main

import "github.com/ZeroSibe/nc-news/cmd/server/commands"

func main() {
	commands.Execute()
}
