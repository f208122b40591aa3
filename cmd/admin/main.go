package main

import (
	"log"
	"os"

	"github.com/dmitrijs2005/pitlane/internal/admin"
)

func main() {
	if err := admin.NewApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
