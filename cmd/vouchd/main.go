/*
Command vouchd runs the example user directory.

Configure it through the environment variables package config documents,
or a ".env" file in the working directory.
*/
package main

import (
	"log"

	"github.com/xy-planning-network/vouch/http/example"
	"github.com/xy-planning-network/vouch/internal/config"
	"github.com/xy-planning-network/vouch/ranger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	rng, err := ranger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	example.New(rng, example.NewDirectory()).Register()

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Fatal(err.Error(), nil)
	}
}
