package main

import "github.com/vietddude/outcall/internal/cli"

func main() {
	cli.Execute()
}
