package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"account_ledger/internal/service"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type summaryCmd struct {
	*app
	username string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print a user's ledger totals" }
func (*summaryCmd) Usage() string {
	return `ledgerctl summary -user <username>

  Prints the totals per account type, net worth and whether
  assets = liabilities + equity holds.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "user", "", "Username (case-sensitive)")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprint(c.stderr, c.Usage())
		fmt.Fprintln(c.stderr, "missing required flag: -user")
		return subcommands.ExitUsageError
	}

	conn, repos, cfg, err := c.open()
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return subcommands.ExitFailure
	}
	defer conn.Close()

	u, err := service.NewAuthService(repos.Users, cfg.Security.BcryptCost).FindUser(ctx, c.username)
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to look up user: %v\n", err)
		return subcommands.ExitFailure
	}
	if u == nil {
		fmt.Fprintf(c.stderr, "user %s not found\n", c.username)
		return subcommands.ExitFailure
	}

	sum, err := service.NewLedgerService(repos.Accounts, nil).Summary(ctx, u.ID)
	if err != nil {
		fmt.Fprintf(c.stderr, "failed to compute summary: %v\n", err)
		return subcommands.ExitFailure
	}

	money := func(f float64) string { return decimal.NewFromFloat(f).StringFixed(2) }
	balanced := "no"
	if sum.EquationBalanced {
		balanced = "yes"
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Accounts\t%d\t\n", sum.Accounts)
	fmt.Fprintf(tw, "Assets\t%s\t\n", money(sum.TotalAssets))
	fmt.Fprintf(tw, "Liabilities\t%s\t\n", money(sum.TotalLiabilities))
	fmt.Fprintf(tw, "Equity\t%s\t\n", money(sum.TotalEquity))
	fmt.Fprintf(tw, "Revenue\t%s\t\n", money(sum.TotalRevenue))
	fmt.Fprintf(tw, "Net worth\t%s\t\n", money(sum.NetWorth))
	fmt.Fprintf(tw, "Balanced\t%s\t\n", balanced)
	if sum.Unclassified > 0 {
		fmt.Fprintf(tw, "Unclassified\t%d\t\n", sum.Unclassified)
	}
	if err := tw.Flush(); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
