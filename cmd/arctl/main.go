package main

import (
	"github.com/NVIDIA/arctl/pkg/cli"
)

func main() {
	cli.Execute()
}
