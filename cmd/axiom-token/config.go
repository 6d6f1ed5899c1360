package main

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"
)

var configCMD = &cli.Command{
	Name:  "config",
	Usage: "Manage the repo config file",
	Subcommands: []*cli.Command{
		{
			Name:  "generate",
			Usage: "Write the default config.toml into the repo dir",
			Action: func(ctx *cli.Context) error {
				rep, err := loadRepo(ctx)
				if err != nil {
					return err
				}
				return rep.Flush()
			},
		},
		{
			Name:  "show",
			Usage: "Print the effective config",
			Action: func(ctx *cli.Context) error {
				rep, err := loadRepo(ctx)
				if err != nil {
					return err
				}
				buf := new(bytes.Buffer)
				e := toml.NewEncoder(buf)
				e.SetIndentTables(true)
				if err := e.Encode(rep.Config); err != nil {
					return err
				}
				fmt.Println(buf.String())
				return nil
			},
		},
	},
}
