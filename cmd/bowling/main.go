// Command bowling scores games from the terminal.
//
//	bowling score "X 7/ 9- X -8 8/ -6 X X X81"
//	bowling play
//	bowling samples
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("bowling")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "bowling",
		Usage: "ten-pin bowling score keeper",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Before: func(c *cli.Context) error {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			scoreCommand(),
			playCommand(),
			samplesCommand(),
		},
	}
}
