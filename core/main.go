package main

import (
	"log"
	"os"

	"github.com/Trinoooo/dastcom/storage/cli"
	"github.com/Trinoooo/dastcom/storage/logs"
)

func main() {
	defer logs.Sync()
	wrapper := cli.NewWrapper()
	if err := wrapper.Run(os.Args); err != nil {
		logs.Sync()
		log.Fatalln(err)
	}
}
