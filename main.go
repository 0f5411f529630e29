package main

import (
	"runer/cmd"
	"runer/config"
	"runer/logging"
)

func main() {
	logging.Init(config.AppName)
	defer logging.Sync()

	cmd.Execute()
}
