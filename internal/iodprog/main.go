// Public domain.

// Package iodprog is the command line driver for Gauss initial orbit
// determination over files of MPC 80 column astrometry.
package iodprog

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"sort"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/mpcformat"

	"github.com/FusRoman/outfit"
	"github.com/FusRoman/outfit/ephem"
	"github.com/FusRoman/outfit/internal/logging"
	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/mpcingest"
	"github.com/FusRoman/outfit/obs"
)

const versionString = "gaussiod version 0.1 Go source."
const copyrightString = "Public domain."

type commandLine struct {
	fnObs    string // observation file, - for stdin
	fnConfig string
	fnOcd    string // obscode.dat
	seed     uint64
	seedSet  bool
	parallel bool
	v        bool
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dc := flag.String("c", "", "`config-file` (YAML)")
	do := flag.String("o", "obscode.dat", "`obscode-file`")
	ds := flag.Uint64("s", 0, "batch `seed` for repeatable runs")
	dp := flag.Bool("p", false, "solve trajectories in parallel")
	dv := flag.Bool("v", false, "display version and copyright")
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage: gaussiod [options] <obsfile>   Determine orbits from file.
       gaussiod [options] -           Determine orbits from stdin.
       gaussiod -v                    Display version and copyright.

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *dv {
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	cl.fnObs = flag.Arg(0)
	cl.fnConfig = *dc
	cl.fnOcd = *do
	cl.parallel = *dp
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "s" {
			cl.seedSet = true
		}
	})
	cl.seed = *ds
	return &cl
}

func Main() {
	defer exit.Handler()

	cl := parseCommandLine()
	cfg, err := readConfigFile(cl.fnConfig)
	if err != nil {
		exit.Log(err)
	}

	lg := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	var eph ephem.Service = ephem.USNO{}
	if cfg.Ephemeris == "meeus" {
		eph = ephem.Meeus{}
	}
	env := outfit.New(eph, lg)
	loadOcd(env, cl.fnOcd)

	if cl.parallel {
		cfg.IOD.Parallel = true
	}
	params, err := cfg.params()
	if err != nil {
		exit.Log(err)
	}

	var f *os.File
	if cl.fnObs == "-" {
		f = os.Stdin
		cl.fnObs = "input stream"
	} else {
		if f, err = os.Open(cl.fnObs); err != nil {
			exit.Log(err)
		}
		defer f.Close()
	}

	ts, stats, err := mpcingest.ReadTrajectorySet(f, env.ParallaxMap(), cfg.accuracy())
	if err != nil {
		exit.Log(err)
	}
	lg.Info(context.Background(), "observations read",
		logging.String("file", cl.fnObs),
		logging.Int("trajectories", stats.Trajectories),
		logging.Int("observations", stats.Observations),
		logging.Int("badArcs", stats.BadArcs),
		logging.Int("noSite", stats.NoSite))

	// interrupt maps to cooperative cancellation; partial results are
	// still printed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var seed *uint64
	if cl.seedSet {
		seed = &cl.seed
	}
	results, failures := env.EstimateAllOrbits(ctx, ts, params, seed)
	printResults(results, failures)
}

// loadOcd loads observatory codes, downloading a fresh obscode.dat on
// a failed read the way the file is usually bootstrapped.
func loadOcd(env *outfit.Outfit, ocdFile string) {
	_, readErr := env.LoadObscodeDat(ocdFile)
	if readErr == nil {
		return
	}
	// that didn't work.  try getting a fresh copy.
	if err := mpcformat.FetchObscodeDat(ocdFile); err != nil {
		log.Println(readErr) // show error from read attempt,
		exit.Log(err)        // and error from download attempt
	}
	if _, err := env.LoadObscodeDat(ocdFile); err != nil {
		exit.Log(err)
	}
}

func printResults(results map[obs.ObjectID]iod.GaussResult, failures map[obs.ObjectID]error) {
	ids := make([]obs.ObjectID, 0, len(results)+len(failures))
	for id := range results {
		ids = append(ids, id)
	}
	for id := range failures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	fmt.Println("Desig.       RMS\"  Stage      Elements")
	for _, id := range ids {
		if err, ok := failures[id]; ok {
			fmt.Printf("%-12s    --  failed     %v\n", id, err)
			continue
		}
		r := results[id]
		fmt.Printf("%-12s %5.2f  %-9s  %v\n",
			id, r.RMS*radToArcsec, r.Stage, r.Elements)
	}
}

const radToArcsec = 180 * 3600 / math.Pi
