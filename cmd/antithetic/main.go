package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"antithetic/internal/conf"

	"github.com/yola1107/kratos/v2"
	kratoserrors "github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/log"
	"github.com/yola1107/kratos/v2/transport/http"
	_ "go.uber.org/automaxprocs"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name is the name of the compiled software.
	Name = "antithetic"
	// Version is the version of the compiled software.
	Version string
	// flagconf is the config flag.
	flagconf string

	id, _ = os.Hostname()
)

var (
	flagSamples = flag.Int("n", 0, "plain estimator sample count; the antithetic run uses n/2 pairs")
	flagSeed    = flag.Uint64("seed", 0, "Mersenne Twister seed")
	flagFormat  = flag.String("format", "", "output format: text or json")
	flagEcho    = flag.Bool("echo", false, "read one value from the input after the results and print it")
	flagInput   = flag.String("input", "", `input for -echo: a file path or "-" for stdin`)
	flagStudy   = flag.Bool("study", false, "compare the estimators over -trials consecutive seeds")
	flagTrials  = flag.Int("trials", 0, "number of seeds a study runs")
	flagServe   = flag.Bool("serve", false, "serve the estimators over HTTP")
)

func init() {
	flag.StringVar(&flagconf, "conf", "../../configs", "config path, eg: -conf config.yaml")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(
			hs,
		),
	)
}

func main() {
	flag.Parse()

	bc, err := loadConfig()
	if err != nil {
		panic(err)
	}
	if err := applyFlags(bc); err != nil {
		fail(err)
	}

	logger, closeLog := newLogger(bc.Log)
	defer closeLog()

	if *flagServe {
		app, cleanup, err := wireApp(bc.Server, bc.Estimator, bc.Data, logger)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		// start and wait for stop signal
		if err := app.Run(); err != nil {
			panic(err)
		}
		return
	}

	svc, cleanup, err := wireService(bc.Estimator, bc.Data, logger)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	if err := run(context.Background(), os.Stdout, svc, bc.Estimator, *flagStudy); err != nil {
		cleanup()
		closeLog()
		fail(err)
	}
}

// loadConfig reads -conf. Without an explicit -conf a missing default path
// falls back to the built-in defaults.
func loadConfig() (*conf.Bootstrap, error) {
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "conf" {
			explicit = true
		}
	})
	if _, err := os.Stat(flagconf); err != nil && !explicit {
		return conf.Default(), nil
	}
	return conf.Load(flagconf)
}

// applyFlags overrides configuration with the flags set on the command line.
func applyFlags(bc *conf.Bootstrap) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			bc.Estimator.Samples = *flagSamples
		case "seed":
			if *flagSeed > math.MaxUint32 {
				err = fmt.Errorf("-seed %d exceeds %d", *flagSeed, uint32(math.MaxUint32))
				return
			}
			bc.Estimator.Seed = uint32(*flagSeed)
		case "format":
			bc.Estimator.Format = *flagFormat
		case "echo":
			bc.Estimator.Echo = *flagEcho
		case "trials":
			bc.Estimator.Trials = *flagTrials
		case "input":
			bc.Data.Input = *flagInput
		}
	})
	if err != nil {
		return err
	}
	return bc.Validate()
}

func fail(err error) {
	msg := err.Error()
	if se := kratoserrors.FromError(err); se != nil && se.Reason != "" {
		msg = se.Reason + ": " + se.Message
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", Name, msg)
	os.Exit(1)
}
