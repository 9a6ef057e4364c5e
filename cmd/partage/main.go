package main

import "github.com/partage-labs/partage/cmd/partage/cmd"

func main() {
	cmd.Execute()
}
