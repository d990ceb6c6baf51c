/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/kestreldb/kestrel/cmd/kestrel/cmd"
)

func main() {
	cmd.Execute()
}
