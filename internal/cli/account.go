package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2) + " VINGD"
}

func (a *App) Profile(ctx context.Context, _ []string) error {
	p, err := a.broker.GetUserProfile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "uid:      %d\n", p.UID)
	fmt.Fprintf(a.out, "username: %s\n", p.Username)

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s: %v\n", k, p.Fields[k])
	}
	return nil
}

func (a *App) Balance(ctx context.Context, _ []string) error {
	b, err := a.broker.GetAccountBalance(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Balance: %s\n", formatAmount(b))
	return nil
}
