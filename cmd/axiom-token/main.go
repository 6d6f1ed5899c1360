package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-token/pkg/repo"
)

func main() {
	app := cli.NewApp()
	app.Name = repo.AppName
	app.Usage = "A fungible-token ledger over a durable key/value store"
	app.Compiled = time.Now()

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "repo",
			Usage: "Work path",
		},
	}

	app.Commands = []*cli.Command{
		configCMD,
		initCMD,
		mintCMD,
		burnCMD,
		transferCMD,
		approveCMD,
		transferFromCMD,
		freezeCMD,
		unfreezeCMD,
		setFrozenCMD,
		setAdminCMD,
		queryCMD,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
