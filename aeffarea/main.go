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
	eEdgeN   = flag.Int("eedges", 9, "number of energy bin edges (log spaced)")
	zdEdgeN  = flag.Int("zdedges", 15, "number of zenith-distance bin edges (linear)")
	thetaSq  = flag.Float64("theta", aeff.DefaultThetaSqCut, "theta-square cut")
	mcEnergy = flag.Bool("mcenergy", false, "bin by true Monte-Carlo energy instead of the estimator")
	tree     = flag.String("tree", "Events", "tree name in the input files")
	cacheDir = flag.String("cache", "a_eff", "array cache directory")
	chunks   = flag.Int("chunks", 8, "number of tally partitions")
	state    = flag.String("state", "", "write the analysis state to this JSON file")

	eEdges  aeff.FloatList
	zdEdges aeff.FloatList
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [options] <analyzed-mc-file> <thrown-mc-files>...

options:
`,
		os.Args[0],
	)
	flag.PrintDefaults()
}

func main() {
	flag.Var(&eEdges, "ebin", "explicit energy bin edge (repeatable, overrides -eedges)")
	flag.Var(&zdEdges, "zdbin", "explicit zenith bin edge (repeatable, overrides -zdedges)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 2 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	energy := aeff.BinEdges(eEdges.Values)
	if len(energy) == 0 {
		energy = aeff.EnergyEdges(*eEdgeN)
	}
	zenith := aeff.BinEdges(zdEdges.Values)
	if len(zenith) == 0 {
		zenith = aeff.ZdEdges(*zdEdgeN)
	}

	mode := aeff.EstimatedEnergy
	if *mcEnergy {
		mode = aeff.TrueEnergy
	}

	analyzed := &aeff.RootSource{
		Files:    []string{flag.Arg(0)},
		Tree:     *tree,
		Branches: aeff.AnalyzedBranches(),
	}
	calc := aeff.NewCalculator(
		analyzed,
		flag.Args()[1:],
		aeff.OpenRoot(*tree, aeff.ThrownBranches()),
		&aeff.Cache{Dir: *cacheDir},
		logger,
	)
	calc.Chunks = *chunks

	area, err := calc.EffectiveArea(context.Background(), energy, zenith, mode, *thetaSq)
	if err != nil {
		logger.Fatal("effective-area computation failed", zap.Error(err))
	}

	rows, cols := area.Dims()
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			if i > 0 {
				fmt.Print("\t")
			}
			fmt.Printf("%g", area.At(j, i))
		}
		fmt.Println()
	}

	if *state != "" {
		st := aeff.AnalysisState{
			ThetaSqCut:    *thetaSq,
			UseMCEnergy:   *mcEnergy,
			EnergyBinning: []float64(energy),
			ZenithBinning: []float64(zenith),
		}
		if err := st.SetEffectiveArea(area, nil); err != nil {
			logger.Fatal("failed to record effective area", zap.Error(err))
		}
		if err := st.Save(*state); err != nil {
			logger.Fatal("failed to save analysis state", zap.Error(err))
		}
	}
}
