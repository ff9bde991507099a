/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"os"

	"github.com/cristianoliveira/alertdeck/cmd"
	"github.com/cristianoliveira/alertdeck/internal/errors"
)

func main() {
	err := cmd.Execute()
	if cerr := session.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		errors.Report(errors.NewDefaultCLIHandler(), err)
		os.Exit(1)
	}
}
