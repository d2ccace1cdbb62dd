package main

import (
	"log"

	"github.com/ivlev/img2roi/internal/cli"
)

var buildVersion = "dev"

func main() {
	log.SetFlags(0)
	cli.SetVersion(buildVersion)

	if err := cli.Execute(); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
}
