package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/airshower/aeff"
)

var (
	config = flag.String("config", "analysis.yaml", "analysis configuration file")

	thetas  = aeff.FloatList{Values: []float64{0.02, 0.04, 0.06, aeff.DefaultThetaSqCut, 0.1}}
	eCounts = aeff.FloatList{Values: []float64{5, 7, 9, 11}}
	zCounts = aeff.FloatList{Values: []float64{9, 12, 15}}
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options]

Sweeps effective-area computations over theta-square cuts and bin counts,
filling the array cache as it goes.

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&thetas, "theta", "theta-square cut to sweep (repeatable)")
	flag.Var(&eCounts, "eedges", "energy bin-edge count to sweep (repeatable)")
	flag.Var(&zCounts, "zdedges", "zenith bin-edge count to sweep (repeatable)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg, err := aeff.LoadConfig(*config)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	analyzed := &aeff.RootSource{
		Files:    []string{cfg.AnalyzedMC},
		Branches: aeff.AnalyzedBranches(),
	}
	calc := aeff.NewCalculator(
		analyzed,
		cfg.ThrownMC,
		aeff.OpenRoot("", aeff.ThrownBranches()),
		&aeff.Cache{Dir: cfg.CacheDir},
		logger,
	)
	calc.Chunks = cfg.Chunks

	ctx := context.Background()
	total := len(thetas.Values) * len(eCounts.Values) * len(zCounts.Values)
	done := 0
	for _, ne := range eCounts.Values {
		for _, nz := range zCounts.Values {
			energy := aeff.EnergyEdges(int(ne))
			zenith := aeff.ZdEdges(int(nz))
			for _, cut := range thetas.Values {
				// Any worker failure aborts the whole sweep; a partially
				// filled cache is safe to resume from.
				if _, err := calc.EffectiveArea(ctx, energy, zenith, cfg.Mode(), cut); err != nil {
					logger.Fatal("sweep aborted", zap.Error(err))
				}
				done++
				logger.Info("sweep progress",
					zap.Int("done", done),
					zap.Int("total", total),
					zap.Int("eedges", int(ne)),
					zap.Int("zdedges", int(nz)),
					zap.Float64("thetasq", cut))
			}
		}
	}
}
