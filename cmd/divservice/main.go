// Package main provides the divservice CLI application. divservice
// serves Diversity Workbench collection data to mobile clients.
package main

import (
	"os"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
