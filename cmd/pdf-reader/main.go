package main

import (
	"fmt"
	"os"
)

const (
	AppName = "PDF Reader"
	AppID   = "com.pdfreader.viewer"
)

var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
