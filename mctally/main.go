package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/airshower/aeff"
)

var (
	eEdgeN   = flag.Int("eedges", 9, "number of energy bin edges (log spaced)")
	zdEdgeN  = flag.Int("zdedges", 15, "number of zenith-distance bin edges (linear)")
	tree     = flag.String("tree", "Events", "tree name in the input files")
	chunks   = flag.Int("chunks", 8, "number of tally partitions")
	cacheDir = flag.String("cache", "", "array cache directory (empty disables caching)")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <thrown-mc-files>...

Tallies thrown simulation events into a (zenith, energy) count matrix.

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	defer profile.Start().Stop()

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	energy := aeff.EnergyEdges(*eEdgeN)
	zenith := aeff.ZdEdges(*zdEdgeN)
	files := flag.Args()

	counts, err := aeff.TallyFiles(
		context.Background(),
		energy, zenith,
		files, *chunks,
		aeff.OpenRoot(*tree, aeff.ThrownBranches()),
		aeff.TrueEnergy,
	)
	if err != nil {
		log.Fatal(err)
	}

	if *cacheDir != "" {
		cache := &aeff.Cache{Dir: *cacheDir}
		if err := cache.Store(aeff.TallyKey(energy, zenith, aeff.ListDigest(files)), counts); err != nil {
			log.Fatal(err)
		}
	}

	rows, cols := counts.Dims()
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if i > 0 {
				fmt.Print("\t")
			}
			fmt.Printf("%g", counts.At(j, i))
		}
		fmt.Println()
	}
}
