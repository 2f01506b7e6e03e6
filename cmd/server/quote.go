package main

import (
	"encoding/json"
	"fmt"
	"os"

	"orusweb/internal/models"
	"orusweb/internal/services/preview"

	"github.com/shopspring/decimal"
	cli "github.com/urfave/cli/v2"
)

// quoteCmd prints the preview a form would show, for checking gateway
// charge settings without a browser.
var quoteCmd = &cli.Command{
	Name:      "quote",
	Usage:     "Compute a fee and conversion preview",
	ArgsUsage: "AMOUNT",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "source-rate", Value: "1", Usage: "rate of the gateway currency"},
		&cli.StringFlag{Name: "target-rate", Value: "1", Usage: "rate of the wallet currency"},
		&cli.StringFlag{Name: "fixed", Value: "0", Usage: "fixed charge, in gateway currency"},
		&cli.StringFlag{Name: "percent", Value: "0", Usage: "percent charge"},
		&cli.BoolFlag{Name: "withdraw", Usage: "compute in the withdraw direction"},
		&cli.IntFlag{Name: "places", Value: preview.DefaultPlaces, Usage: "decimal places for money"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("quote needs exactly one AMOUNT", 2)
		}

		source := models.Currency{Code: "SRC"}
		target := models.Currency{Code: "DST"}
		for _, f := range []struct {
			flag string
			dst  *decimal.Decimal
		}{
			{"source-rate", &source.Rate},
			{"target-rate", &target.Rate},
			{"fixed", &source.FixedCharge},
			{"percent", &source.PercentCharge},
		} {
			d, err := decimal.NewFromString(c.String(f.flag))
			if err != nil {
				return cli.Exit(fmt.Sprintf("invalid --%s: %v", f.flag, err), 2)
			}
			*f.dst = d
		}

		dir := preview.Deposit
		if c.Bool("withdraw") {
			dir = preview.Withdraw
		}
		q := preview.Calculate(preview.Input{
			Amount:    c.Args().First(),
			Source:    source,
			Target:    target,
			Direction: dir,
		})
		if !q.Valid {
			fmt.Fprintln(os.Stderr, "input does not produce a quote; showing zeros")
		}

		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(q.Display(int32(c.Int("places"))))
	},
}
