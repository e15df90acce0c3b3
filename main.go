package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"q.log/tableau/instance"
	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

const envPrefix = "TABLEAU"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns 0 for an optimal solution, 2 when the problem has none and 1
// on errors.
func run(args []string, stdout, stderr io.Writer) int {
	v, files, err := loadConfig(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if len(files) != 1 {
		fmt.Fprintln(stderr, "usage: tableau [flags] <problem.mps|problem.yaml>")
		return 1
	}

	stdr.SetVerbosity(v.GetInt("verbose"))
	logger := stdr.New(log.New(stderr, "", log.LstdFlags)).WithName("tableau")

	m, err := readProblem(files[0], v.GetString("format"))
	if err != nil {
		logger.Error(err, "reading problem", "file", files[0])
		return 1
	}
	if v.GetBool("print-model") {
		if err := m.Fprint(stdout); err != nil {
			logger.Error(err, "printing model")
			return 1
		}
	}

	res, err := simplex.SolveModel(m,
		simplex.WithTolerance(v.GetFloat64("tol")),
		simplex.WithMaxIterations(v.GetInt("max-iterations")),
		simplex.WithLogger(logger),
	)
	if err != nil {
		logger.Error(err, "solving problem", "file", files[0])
		return 1
	}
	report(stdout, m, res, logger)
	if res.Status != simplex.StatusOptimal {
		return 2
	}
	return 0
}

func loadConfig(args []string, stderr io.Writer) (*viper.Viper, []string, error) {
	fs := pflag.NewFlagSet("tableau", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64("tol", simplex.DefaultTolerance, "zero tolerance used by every comparison")
	fs.Int("max-iterations", simplex.DefaultMaxIterations, "iteration cap of each simplex loop")
	fs.String("format", "", "input format: mps or yaml (default from file extension)")
	fs.IntP("verbose", "v", 0, "log verbosity; 1 logs phases, 2 logs every pivot")
	fs.Bool("print-model", false, "print the lowered model before solving")
	fs.String("config", "", "optional config file with the same keys as the flags")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, nil, errors.Wrap(err, "bind flags")
	}
	if cfg := v.GetString("config"); cfg != "" {
		v.SetConfigFile(cfg)
		if err := v.ReadInConfig(); err != nil {
			return nil, nil, errors.Wrapf(err, "read config %s", cfg)
		}
	}
	return v, fs.Args(), nil
}

func readProblem(path, format string) (*model.Model, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
			format = "yaml"
		default:
			format = "mps"
		}
	}
	switch format {
	case "mps":
		return instance.NewReader(path).ConstructModelFromFile()
	case "yaml":
		return instance.ReadFile(path)
	}
	return nil, errors.Errorf("unknown format %q", format)
}

func report(w io.Writer, m *model.Model, res *simplex.Result, logger logr.Logger) {
	logger.V(1).Info("solve finished", "status", res.Status, "pivots", res.Iterations, "phase1", res.Phase1)
	fmt.Fprintf(w, "status: %s\n", res.Status)
	if res.Status != simplex.StatusOptimal {
		return
	}
	fmt.Fprintf(w, "Z = %v\n", res.Objective)
	for j, x := range res.X {
		fmt.Fprintf(w, "%s = %v\n", m.Names[j], x)
	}
}
