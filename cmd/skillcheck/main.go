// Command skillcheck serves and plays domain/topic quizzes from a CSV file.
package main

import (
	"os"

	"skillcheck/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
