package main

import "github.com/fieldvault/fieldvault/cmd/fieldvault/cmd"

func main() {
	cmd.Execute()
}
