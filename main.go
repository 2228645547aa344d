package main

import (
	"os"

	"github.com/asferrer/project-planner-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
