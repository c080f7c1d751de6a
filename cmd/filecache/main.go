package main

import (
	"os"

	"github.com/leonardcser/filecache/internal/logger"
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}
