package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/vingd/broker"
	"github.com/dmitrijs2005/vingd/internal/datex"
)

const defaultTransferCount = 10

// Transfers lists the latest incoming (default) or outgoing transfers of
// the account.
func (a *App) Transfers(ctx context.Context, args []string) error {
	direction := "in"
	count := defaultTransferCount
	for _, arg := range args {
		switch arg {
		case "in", "out":
			direction = arg
		default:
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				return fmt.Errorf("not a count: %q", arg)
			}
			count = n
		}
	}

	uid, err := a.broker.GetUserID(ctx)
	if err != nil {
		return err
	}
	filter := broker.UIDFilter{To: &uid}
	if direction == "out" {
		filter = broker.UIDFilter{From: &uid}
	}

	transfers, err := a.broker.GetTransfers(ctx, filter, broker.LimitFilter{Last: &count})
	if err != nil {
		return err
	}
	if len(transfers) == 0 {
		fmt.Fprintln(a.out, "No transfers")
		return nil
	}
	for _, t := range transfers {
		when, err := datex.ToHuman(t.Timestamp, "")
		if err != nil {
			when = t.Timestamp
		}
		class := t.Description.Classname
		if class == "" {
			class = fmt.Sprintf("class %d", t.Description.Class)
		}
		fmt.Fprintf(a.out, "%d\t%s\t%d -> %d\t%s\t%s\n", t.ID, formatAmount(t.Amount), t.FromUID, t.ToUID, class, when)
	}
	return nil
}
