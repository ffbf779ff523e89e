package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/vingd/broker"
	"github.com/dmitrijs2005/vingd/internal/datex"
	"github.com/shopspring/decimal"
)

var ErrNoPendingPurchase = errors.New("no verified purchase to commit")

func (a *App) Order(ctx context.Context, args []string) error {
	oid, err := a.intArg(args, 0, "Enter object id")
	if err != nil {
		return err
	}
	price, err := a.amountArg(args, 1, "Enter price")
	if err != nil {
		return err
	}

	order, err := a.broker.CreateOrder(ctx, broker.OrderRequest{
		ObjectID: oid,
		Price:    price,
		Expires:  rest(args, 2),
	})
	if err != nil {
		return err
	}

	expires, err := datex.ToHuman(order.Expires, "")
	if err != nil {
		expires = order.Expires
	}
	fmt.Fprintf(a.out, "Order %d for object %d at %s, expires %s\n",
		order.ID, order.Object.ID, formatAmount(decimal.New(order.Object.Price, -2)), expires)
	fmt.Fprintf(a.out, "Redirect: %s\n", order.URLs.Redirect)
	fmt.Fprintf(a.out, "Popup:    %s\n", order.URLs.Popup)
	return nil
}

// Verify checks a purchase token and remembers the purchase for Commit.
func (a *App) Verify(ctx context.Context, args []string) error {
	token, err := a.argOrPrompt(args, 0, "Enter token")
	if err != nil {
		return err
	}
	p, err := a.broker.VerifyPurchase(ctx, token)
	if err != nil {
		return err
	}
	a.pending = p
	fmt.Fprintf(a.out, "Purchase %d of %q by %s verified (transfer %d)\n", p.PurchaseID, p.Object, p.HUID, p.TransferID)
	if p.Context != "" {
		fmt.Fprintf(a.out, "Context: %s\n", p.Context)
	}
	return nil
}

func (a *App) Commit(ctx context.Context, _ []string) error {
	if a.pending == nil {
		return ErrNoPendingPurchase
	}
	res, err := a.broker.CommitPurchase(ctx, a.pending)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Purchase %d committed: %t\n", a.pending.PurchaseID, res.OK)
	a.pending = nil
	return nil
}
