package main

import (
	cmd "github.com/rendetalje/friday/cmd/friday"
	"github.com/rendetalje/friday/internal"
)

var log = internal.GetLogger()

func main() {
	log.Info("Starting friday")
	cmd.Execute()
}
