package main

import "github.com/Tedfulk/ollama-rename-img/cmd"

func main() {
	cmd.Execute()
}
