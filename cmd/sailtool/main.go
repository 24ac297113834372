package main

import (
	"fmt"
	"os"

	"github.com/me/sailfish/internal/tool"
)

func main() {
	if err := tool.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
