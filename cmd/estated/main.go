package main

import "github.com/AAYUSH-GUPTA-coder/tokenize-real-estate/internal/cli"

func main() {
	cli.Execute()
}
