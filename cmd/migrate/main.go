package main

import (
	"log"
	"os"
	"strconv"

	"hotelops/config"
	"hotelops/helper"
)

const (
	argLength      = 2
	forceArgLength = 3
)

func main() {
	if len(os.Args) < argLength {
		log.Fatal("Migration action is required: up, down, drop, step-up, version or force <version>")
	}

	cfg := config.Get()

	switch os.Args[1] {
	case "version":
		version, dirty, err := helper.Version(cfg)
		if err != nil {
			log.Fatal(err)
		}

		log.Printf("version %d (dirty: %t)", version, dirty)
	case "force":
		if len(os.Args) < forceArgLength {
			log.Fatal("force requires a version")
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal("version must be an integer")
		}

		if err := helper.Force(cfg, version); err != nil {
			log.Fatal(err)
		}
	default:
		if err := helper.Runner(cfg, os.Args[1]); err != nil {
			log.Fatal(err)
		}
	}
}
