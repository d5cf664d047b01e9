package main

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/mines"
)

const help = `commands:
  o x y   open a cell
  f x y   toggle a flag
  r       give up
  g       redraw
  n       new game
  q       quit
`

func render(out io.Writer, g *game.Game) {
	s := g.Snapshot()
	fmt.Fprintf(out, "\n%s\n", s.Grid.ToString(s.Width))
	fmt.Fprintf(
		out, "mines left: %d  status: %s  time: %ds\n",
		s.MinesRemaining, s.Status, s.ElapsedMs/int64(time.Second/time.Millisecond),
	)
	switch s.Status {
	case game.Won:
		fmt.Fprintln(out, "You won! Press n for a new game or q to quit.")
	case game.Lost:
		fmt.Fprintln(out, "Boom. Press n for a new game or q to quit.")
	}
}

// run plays games read line by line from in until "q" or end of input.
func run(
	in io.Reader, out io.Writer, params mines.GameParams, r *rand.Rand, log *logrus.Logger,
) error {
	g, err := game.New(params)
	if err != nil {
		return err
	}
	fmt.Fprint(out, help)
	render(out, g)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit":
			return nil
		case "h", "help", "?":
			fmt.Fprint(out, help)
			continue
		case "n":
			if g, err = game.New(params); err != nil {
				return err
			}
			log.Debug("new game")
			render(out, g)
			continue
		}

		cmd, err := game.ParseCommand(line)
		if err == nil {
			err = g.Execute(cmd, r)
		}
		if err != nil {
			log.WithError(err).WithField("command", line).Debug("rejected command")
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}

		log.WithFields(logrus.Fields{
			"command": cmd.String(),
			"status":  g.Status.String(),
		}).Debug("applied command")
		if g.Status.Over() {
			log.WithFields(logrus.Fields{
				"status":     g.Status.String(),
				"elapsed_ms": g.Elapsed(time.Now()).Milliseconds(),
			}).Info("game over")
		}
		render(out, g)
	}
}
