package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minefield/internal/mines"
)

type options struct {
	difficulty string
	width      int
	height     int
	mineCount  int
	seed       string
	logFile    string
	debug      bool
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("mines", flag.ContinueOnError)
	fs.StringVar(&opts.difficulty, "difficulty", string(mines.Easy), "easy, medium or hard")
	fs.IntVar(&opts.width, "width", 0, "board width (overrides difficulty with -height and -mines)")
	fs.IntVar(&opts.height, "height", 0, "board height")
	fs.IntVar(&opts.mineCount, "mines", 0, "mine count")
	fs.StringVar(&opts.seed, "seed", "", `fixed random seed, e.g. "1:2"`)
	fs.StringVar(&opts.logFile, "log-file", "", "write logs to this file, rotated")
	fs.BoolVar(&opts.debug, "debug", false, "log at debug level")

	err := ff.Parse(fs, args, ff.WithEnvVarPrefix("MINES"))
	return opts, err
}

func (o options) params() (mines.GameParams, error) {
	if o.width != 0 || o.height != 0 || o.mineCount != 0 {
		p := mines.GameParams{Width: o.width, Height: o.height, MineCount: o.mineCount}
		return p, p.Validate()
	}
	d, err := mines.ParseDifficulty(o.difficulty)
	if err != nil {
		return mines.GameParams{}, err
	}
	return d.Params(), nil
}

func (o options) source() (*rand.Rand, error) {
	if o.seed == "" {
		now := uint64(time.Now().UnixNano())
		return rand.New(rand.NewPCG(now, uint64(os.Getpid()))), nil
	}
	var s1, s2 uint64
	if _, err := fmt.Sscanf(o.seed, "%d:%d", &s1, &s2); err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", o.seed, err)
	}
	return rand.New(rand.NewPCG(s1, s2)), nil
}

// newLogger never writes to stdout, which belongs to the board.
func newLogger(o options) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	level := logrus.InfoLevel
	if o.debug {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if o.logFile == "" {
		return log, nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   o.logFile,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.AddHook(hook)
	return log, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	params, err := opts.params()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	r, err := opts.source()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := newLogger(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.WithFields(logrus.Fields{
		"seed":  params.Seed(),
		"debug": opts.debug,
	}).Info("starting up")

	if err := run(os.Stdin, os.Stdout, params, r, log); err != nil {
		log.WithError(err).Error("exit")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
