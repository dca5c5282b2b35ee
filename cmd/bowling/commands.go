package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/robalobadob/bowling/internal/bowling"
	"github.com/robalobadob/bowling/internal/sheet"
)

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "score a sheet (\"X 7/ 9-\") or a pin list (\"10, 7, 2\")",
		ArgsUsage: "<sheet>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("missing sheet", 2)
			}
			pins, err := sheet.Parse(strings.Join(c.Args().Slice(), " "))
			if err != nil {
				return err
			}
			g, err := bowling.Replay(pins)
			if err != nil {
				return err
			}
			printFrames(c.App.Writer, g)
			return nil
		},
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "enter a game ball by ball",
		Action: func(c *cli.Context) error {
			g := bowling.NewGame()
			if err := play(c.App.Reader, c.App.Writer, g); err != nil {
				return err
			}
			printFrames(c.App.Writer, g)
			return nil
		},
	}
}

func samplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "samples",
		Usage: "list the built-in sample games and verify their scores",
		Action: func(c *cli.Context) error {
			list, err := sheet.Samples()
			if err != nil {
				return err
			}
			failed := 0
			for _, s := range list {
				got, err := s.Check()
				if err != nil {
					failed++
					log.Error().Err(err).Str("sample", s.Name).Msg("check failed")
					continue
				}
				fmt.Fprintf(c.App.Writer, "%-14s %3d  %s\n", s.Name, got, s.Sheet)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d sample(s) failed", failed), 1)
			}
			return nil
		},
	}
}

// play prompts for each ball until the game is over or input ends. Invalid
// entries are reported and asked for again.
func play(in io.Reader, out io.Writer, g *bowling.Game) error {
	sc := bufio.NewScanner(in)
	for !g.IsComplete() {
		fmt.Fprintf(out, "turn %d, ball %d> ", g.CurrentTurnNumber(), g.NextThrowNumber())
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out)
			log.Debug().Msg("input ended before the game finished")
			return nil
		}
		pins, err := readBall(strings.TrimSpace(sc.Text()), g)
		if err != nil {
			fmt.Fprintf(out, "  %v, try again\n", err)
			continue
		}
		if _, err := g.RecordThrow(pins); err != nil {
			fmt.Fprintf(out, "  %v, try again\n", err)
			continue
		}
		fmt.Fprintf(out, "  score %d\n", g.Score())
	}
	return nil
}

// readBall accepts a number or a single sheet mark for the next ball.
func readBall(s string, g *bowling.Game) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if s == "" {
		return 0, errors.New("empty input")
	}
	// Replay the log plus the mark so '/' is resolved against the rack.
	prefix := sheet.Format(g.Frames())
	pins, err := sheet.Parse(prefix + s)
	if err != nil {
		return 0, err
	}
	if len(pins) != len(g.Throws())+1 {
		return 0, fmt.Errorf("enter one ball at a time")
	}
	return pins[len(pins)-1], nil
}

func printFrames(w io.Writer, g *bowling.Game) {
	frames := g.Frames()
	fmt.Fprintln(w, sheet.Format(frames))
	for _, f := range frames {
		if len(f.Pins) == 0 {
			break
		}
		running := strconv.Itoa(f.Running)
		if !f.Decided {
			running += "?"
		}
		fmt.Fprintf(w, "%2d  %-8s %s\n", f.Number, strings.Trim(fmt.Sprint(f.Pins), "[]"), running)
	}
	state := "in progress"
	if g.IsComplete() {
		state = "final"
	}
	fmt.Fprintf(w, "total %d (%s)\n", g.Score(), state)
}
