package main

import (
	"github.com/niels/staticserve/internal/cmd"
)

func main() {
	cmd.Execute()
}
