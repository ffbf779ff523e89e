package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vingd/broker"
	"github.com/dmitrijs2005/vingd/internal/datex"
)

func (a *App) printVoucher(v broker.Voucher) {
	until, err := datex.ToHuman(v.ValidUntil, "")
	if err != nil {
		until = v.ValidUntil
	}
	line := fmt.Sprintf("%s\t%s\tvalid until %s", v.Code, formatAmount(v.Amount), until)
	if v.Action != "" {
		line += "\t" + v.Action
		if v.Created != "" {
			if created, err := datex.ToHuman(v.Created, ""); err == nil {
				line += " on " + created
			}
		}
	}
	fmt.Fprintln(a.out, line)
	if v.URLs.Redirect != "" {
		fmt.Fprintf(a.out, "\t%s\n", v.URLs.Redirect)
	}
}

func (a *App) printVouchers(vs []broker.Voucher) {
	if len(vs) == 0 {
		fmt.Fprintln(a.out, "No vouchers")
		return
	}
	for _, v := range vs {
		a.printVoucher(v)
	}
}

func (a *App) Vouchers(ctx context.Context, _ []string) error {
	vs, err := a.broker.GetActiveVouchers(ctx)
	if err != nil {
		return err
	}
	a.printVouchers(vs)
	return nil
}

func (a *App) History(ctx context.Context, _ []string) error {
	vs, err := a.broker.GetVouchers(ctx)
	if err != nil {
		return err
	}
	a.printVouchers(vs)
	return nil
}

func (a *App) CreateVoucher(ctx context.Context, args []string) error {
	amount, err := a.amountArg(args, 0, "Enter amount")
	if err != nil {
		return err
	}
	v, err := a.broker.CreateVoucher(ctx, broker.VoucherRequest{
		Amount:  amount,
		Message: rest(args, 1),
	})
	if err != nil {
		return err
	}
	a.printVoucher(*v)
	return nil
}

func (a *App) Reward(ctx context.Context, args []string) error {
	huid, err := a.argOrPrompt(args, 0, "Enter user huid")
	if err != nil {
		return err
	}
	amount, err := a.amountArg(args, 1, "Enter amount")
	if err != nil {
		return err
	}
	r, err := a.broker.RewardUser(ctx, huid, amount, rest(args, 2))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Rewarded %s with %s (transfer %d)\n", huid, formatAmount(amount), r.TransferID)
	return nil
}
