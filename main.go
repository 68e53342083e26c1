package main

import (
	"os"

	"github.com/optimald/webevo-report-gen/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
