package main

import "github.com/acuetara/humo/internal/cli"

func main() {
	cli.Execute()
}
