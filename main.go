package main

import "github.com/cyberes/diagnostico-relay/cmd"

func main() {
	cmd.Execute()
}
