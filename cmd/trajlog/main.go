package main

import "github.com/trajlog-project/trajlog/internal/cli"

func main() {
	cli.Execute()
}
