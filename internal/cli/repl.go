package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. Every handler
// gets the words following the command name.
type execIface interface {
	Profile(ctx context.Context, args []string) error
	Balance(ctx context.Context, args []string) error
	Objects(ctx context.Context, args []string) error
	Object(ctx context.Context, args []string) error
	CreateObject(ctx context.Context, args []string) error
	UpdateObject(ctx context.Context, args []string) error
	Order(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Commit(ctx context.Context, args []string) error
	Transfers(ctx context.Context, args []string) error
	Vouchers(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	CreateVoucher(ctx context.Context, args []string) error
	Reward(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  profile                               show the account profile
  balance                               show the account balance
  objects                               list registered objects
  object <oid>                          show one object
  createobject <name> <url>             register an object
  updateobject <oid> <name> <url>       update an object description
  order <oid> <price> [expires]         create an order
  verify <token>                        verify a purchase token
  commit                                commit the last verified purchase
  transfers [in|out] [count]            list recent transfers
  vouchers                              list active vouchers
  history                               show the voucher log
  createvoucher <amount> [message]      issue a voucher
  reward <huid> <amount> [description]  reward a user
  exit | quit                           leave the program`

// runREPL reads commands line by line from reader and dispatches them to a
// until input ends or the user types "exit" or "quit". Handler errors are
// printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("vingd %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "profile":
			cmdErr = a.Profile(ctx, args)
		case "balance":
			cmdErr = a.Balance(ctx, args)
		case "objects":
			cmdErr = a.Objects(ctx, args)
		case "object":
			cmdErr = a.Object(ctx, args)
		case "createobject":
			cmdErr = a.CreateObject(ctx, args)
		case "updateobject":
			cmdErr = a.UpdateObject(ctx, args)
		case "order":
			cmdErr = a.Order(ctx, args)
		case "verify":
			cmdErr = a.Verify(ctx, args)
		case "commit":
			cmdErr = a.Commit(ctx, args)
		case "transfers":
			cmdErr = a.Transfers(ctx, args)
		case "vouchers":
			cmdErr = a.Vouchers(ctx, args)
		case "history":
			cmdErr = a.History(ctx, args)
		case "createvoucher":
			cmdErr = a.CreateVoucher(ctx, args)
		case "reward":
			cmdErr = a.Reward(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if err != nil {
			return
		}
	}
}
