package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/axiomesh/axiom-token/internal/contract/token"
	"github.com/axiomesh/axiom-token/internal/executor"
)

var initCMD = &cli.Command{
	Name:  "init",
	Usage: "Initialize the token instance from the genesis config",
	Action: func(ctx *cli.Context) error {
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

		genesis := rep.Config.Genesis
		admin := genesis.AdminAddress()
		maxSupply, err := genesis.MaxSupplyBigInt()
		if err != nil {
			return err
		}

		seq, err := nextSequence(store)
		if err != nil {
			return err
		}
		if err := exec.Run("initialize", admin, seq, func(tok *token.Token) error {
			return tok.Initialize(admin, genesis.Decimals, genesis.Name, genesis.Symbol, maxSupply,
				genesis.Mintable, genesis.Burnable, genesis.Freezable)
		}); err != nil {
			return err
		}

		for _, account := range genesis.Accounts {
			to, err := parseAddress(account.Address)
			if err != nil {
				return err
			}
			balance, err := account.BalanceBigInt()
			if err != nil {
				return err
			}
			if err := exec.Run("mint", admin, seq, func(tok *token.Token) error {
				return tok.Mint(to, balance)
			}); err != nil {
				return err
			}
		}

		fmt.Printf("initialized %s (%s) at sequence %d\n", genesis.Name, genesis.Symbol, seq)
		return nil
	},
}

var mintCMD = &cli.Command{
	Name:  "mint",
	Usage: "Mint tokens to an account (admin only)",
	Flags: []cli.Flag{
		fromFlag("caller, must be the admin"),
		&cli.StringFlag{Name: "to", Usage: "receiving account", Required: true},
		amountFlag(),
	},
	Action: runOp("mint", func(ctx *cli.Context, tok *token.Token) error {
		to, err := parseAddress(ctx.String("to"))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.String("amount"))
		if err != nil {
			return err
		}
		return tok.Mint(to, amount)
	}),
}

var burnCMD = &cli.Command{
	Name:  "burn",
	Usage: "Burn tokens from an account (admin only)",
	Flags: []cli.Flag{
		fromFlag("caller, must be the admin"),
		&cli.StringFlag{Name: "holder", Usage: "account to debit", Required: true},
		amountFlag(),
	},
	Action: runOp("burn", func(ctx *cli.Context, tok *token.Token) error {
		holder, err := parseAddress(ctx.String("holder"))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.String("amount"))
		if err != nil {
			return err
		}
		return tok.Burn(holder, amount)
	}),
}

var transferCMD = &cli.Command{
	Name:  "transfer",
	Usage: "Transfer tokens to another account",
	Flags: []cli.Flag{
		fromFlag("sending account"),
		&cli.StringFlag{Name: "to", Usage: "receiving account", Required: true},
		amountFlag(),
	},
	Action: runOp("transfer", func(ctx *cli.Context, tok *token.Token) error {
		from, err := parseAddress(ctx.String("from"))
		if err != nil {
			return err
		}
		to, err := parseAddress(ctx.String("to"))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.String("amount"))
		if err != nil {
			return err
		}
		return tok.Transfer(from, to, amount)
	}),
}

var approveCMD = &cli.Command{
	Name:  "approve",
	Usage: "Grant a spender a bounded, expiring allowance",
	Flags: []cli.Flag{
		fromFlag("owner granting the allowance"),
		&cli.StringFlag{Name: "spender", Usage: "spender account", Required: true},
		amountFlag(),
		&cli.Uint64Flag{Name: "expiration", Usage: "last ledger sequence the allowance is valid at", Required: true},
	},
	Action: runOp("approve", func(ctx *cli.Context, tok *token.Token) error {
		from, err := parseAddress(ctx.String("from"))
		if err != nil {
			return err
		}
		spender, err := parseAddress(ctx.String("spender"))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.String("amount"))
		if err != nil {
			return err
		}
		return tok.Approve(from, spender, amount, ctx.Uint64("expiration"))
	}),
}

var transferFromCMD = &cli.Command{
	Name:  "transfer-from",
	Usage: "Spend an allowance to move the owner's tokens",
	Flags: []cli.Flag{
		fromFlag("spender, must hold a live allowance"),
		&cli.StringFlag{Name: "owner", Usage: "account whose balance is moved", Required: true},
		&cli.StringFlag{Name: "to", Usage: "receiving account", Required: true},
		amountFlag(),
	},
	Action: runOp("transfer_from", func(ctx *cli.Context, tok *token.Token) error {
		spender, err := parseAddress(ctx.String("from"))
		if err != nil {
			return err
		}
		owner, err := parseAddress(ctx.String("owner"))
		if err != nil {
			return err
		}
		to, err := parseAddress(ctx.String("to"))
		if err != nil {
			return err
		}
		amount, err := parseAmount(ctx.String("amount"))
		if err != nil {
			return err
		}
		return tok.TransferFrom(spender, owner, to, amount)
	}),
}

var freezeCMD = &cli.Command{
	Name:  "freeze",
	Usage: "Freeze an account (admin only)",
	Flags: []cli.Flag{
		fromFlag("caller, must be the admin"),
		&cli.StringFlag{Name: "account", Usage: "account to freeze", Required: true},
	},
	Action: runOp("freeze", func(ctx *cli.Context, tok *token.Token) error {
		account, err := parseAddress(ctx.String("account"))
		if err != nil {
			return err
		}
		return tok.Freeze(account)
	}),
}

var unfreezeCMD = &cli.Command{
	Name:  "unfreeze",
	Usage: "Unfreeze an account (admin only)",
	Flags: []cli.Flag{
		fromFlag("caller, must be the admin"),
		&cli.StringFlag{Name: "account", Usage: "account to unfreeze", Required: true},
	},
	Action: runOp("unfreeze", func(ctx *cli.Context, tok *token.Token) error {
		account, err := parseAddress(ctx.String("account"))
		if err != nil {
			return err
		}
		return tok.Unfreeze(account)
	}),
}

var setFrozenCMD = &cli.Command{
	Name:  "set-frozen",
	Usage: "Toggle the global freeze flag (admin only)",
	Flags: []cli.Flag{
		fromFlag("caller, must be the admin"),
		&cli.BoolFlag{Name: "frozen", Usage: "desired global freeze state", Required: true},
	},
	Action: runOp("set_frozen", func(ctx *cli.Context, tok *token.Token) error {
		return tok.SetFrozen(ctx.Bool("frozen"))
	}),
}

var setAdminCMD = &cli.Command{
	Name:  "set-admin",
	Usage: "Rotate the administrator (admin only)",
	Flags: []cli.Flag{
		fromFlag("caller, must be the current admin"),
		&cli.StringFlag{Name: "new-admin", Usage: "new admin account", Required: true},
	},
	Action: runOp("set_admin", func(ctx *cli.Context, tok *token.Token) error {
		newAdmin, err := parseAddress(ctx.String("new-admin"))
		if err != nil {
			return err
		}
		return tok.SetAdmin(newAdmin)
	}),
}

func fromFlag(usage string) cli.Flag {
	return &cli.StringFlag{Name: "from", Usage: usage, Required: true}
}

func amountFlag() cli.Flag {
	return &cli.StringFlag{Name: "amount", Usage: "amount, a decimal integer", Required: true}
}

// runOp wraps a mutating command: open the store, advance the host sequence,
// execute atomically, report.
func runOp(method string, op func(ctx *cli.Context, tok *token.Token) error) cli.ActionFunc {
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

		from, err := parseAddress(ctx.String("from"))
		if err != nil {
			return err
		}
		seq, err := nextSequence(store)
		if err != nil {
			return err
		}
		if err := exec.Run(method, from, seq, func(tok *token.Token) error {
			return op(ctx, tok)
		}); err != nil {
			return err
		}
		fmt.Printf("%s committed at sequence %d\n", method, seq)
		return nil
	}
}
