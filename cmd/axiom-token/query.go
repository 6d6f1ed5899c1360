package main

import (
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-token/internal/contract/token"
	"github.com/axiomesh/axiom-token/internal/executor"
)

var queryCMD = &cli.Command{
	Name:  "query",
	Usage: "Read token state, no authorization required",
	Subcommands: []*cli.Command{
		{
			Name:  "balance",
			Usage: "Show an account balance",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "account", Usage: "account to look up", Required: true},
			},
			Action: runQuery(func(ctx *cli.Context, tok *token.Token) error {
				account, err := parseAddress(ctx.String("account"))
				if err != nil {
					return err
				}
				balance, err := tok.BalanceOf(account)
				if err != nil {
					return err
				}
				fmt.Println(balance.String())
				return nil
			}),
		},
		{
			Name:  "allowance",
			Usage: "Show the live allowance for an (owner, spender) pair",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "owner", Usage: "allowance owner", Required: true},
				&cli.StringFlag{Name: "spender", Usage: "allowance spender", Required: true},
			},
			Action: runQuery(func(ctx *cli.Context, tok *token.Token) error {
				owner, err := parseAddress(ctx.String("owner"))
				if err != nil {
					return err
				}
				spender, err := parseAddress(ctx.String("spender"))
				if err != nil {
					return err
				}
				amount, err := tok.Allowance(owner, spender)
				if err != nil {
					return err
				}
				fmt.Println(amount.String())
				return nil
			}),
		},
		{
			Name:  "meta",
			Usage: "Show name, symbol and decimals",
			Action: runQuery(func(ctx *cli.Context, tok *token.Token) error {
				name, err := tok.Name()
				if err != nil {
					return err
				}
				symbol, err := tok.Symbol()
				if err != nil {
					return err
				}
				decimals, err := tok.Decimals()
				if err != nil {
					return err
				}
				fmt.Printf("name: %s\nsymbol: %s\ndecimals: %d\n", name, symbol, decimals)
				return nil
			}),
		},
		{
			Name:  "state",
			Usage: "Show supply, capability flags and freeze state",
			Action: runQuery(func(ctx *cli.Context, tok *token.Token) error {
				admin, err := tok.Admin()
				if err != nil {
					return err
				}
				totalSupply, err := tok.TotalSupply()
				if err != nil {
					return err
				}
				maxSupply, err := tok.MaxSupply()
				if err != nil {
					return err
				}
				mintable, err := tok.IsMintable()
				if err != nil {
					return err
				}
				burnable, err := tok.IsBurnable()
				if err != nil {
					return err
				}
				freezable, err := tok.IsFreezable()
				if err != nil {
					return err
				}
				frozen, err := tok.IsFrozen(ethcommon.Address{})
				if err != nil {
					return err
				}

				fmt.Printf("admin: %s\ntotal_supply: %s\n", admin, totalSupply)
				if maxSupply == nil {
					fmt.Println("max_supply: unlimited")
				} else {
					fmt.Printf("max_supply: %s\n", maxSupply)
				}
				fmt.Printf("mintable: %v\nburnable: %v\nfreezable: %v\nglobally_frozen: %v\n",
					mintable, burnable, freezable, frozen)
				return nil
			}),
		},
	},
}

func runQuery(query func(ctx *cli.Context, tok *token.Token) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		rep, err := loadRepo(ctx)
		if err != nil {
			return err
		}
		store, err := openStorage(rep)
		if err != nil {
			return err
		}
		defer store.Close()

		exec := executor.New(store)
		return exec.Query(ethcommon.Address{}, currentSequence(store), func(tok *token.Token) error {
			return query(ctx, tok)
		})
	}
}
