package main

import (
	"flag"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/logging"
	"github.com/vancomm/minefield/internal/minefield"
)

var (
	rows, columns, mines int
	seed                 uint64
)

func init() {
	flag.IntVar(&rows, "rows", 9, "board rows")
	flag.IntVar(&columns, "columns", 9, "board columns")
	flag.IntVar(&mines, "mines", 10, "number of mines")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one)")
}

func main() {
	flag.Parse()
	log := logging.MustNew(config.NewLogging())

	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	log.WithField("seed", seed).Debug("seeding board")

	board, err := minefield.New(rows, columns, mines, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		log.WithError(err).Fatal("unable to create board")
	}

	won, err := play(board, os.Stdin, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("unable to play")
	}
	if !won {
		os.Exit(1)
	}
}
