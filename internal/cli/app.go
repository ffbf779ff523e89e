package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/vingd/broker"
	"github.com/dmitrijs2005/vingd/internal/config"
	"github.com/dmitrijs2005/vingd/internal/cryptox"
	"github.com/dmitrijs2005/vingd/internal/logging"
	"github.com/shopspring/decimal"
)

// brokerAPI is the part of *broker.Client the commands use.
type brokerAPI interface {
	Endpoints() broker.Environment
	GetUserProfile(ctx context.Context) (*broker.UserProfile, error)
	GetUserID(ctx context.Context) (int64, error)
	GetAccountBalance(ctx context.Context) (decimal.Decimal, error)
	GetObjects(ctx context.Context) ([]broker.Object, error)
	GetObject(ctx context.Context, oid int64) (*broker.Object, error)
	CreateObject(ctx context.Context, desc broker.ObjectDescription) (int64, error)
	UpdateObject(ctx context.Context, oid int64, desc broker.ObjectDescription) (int64, error)
	CreateOrder(ctx context.Context, req broker.OrderRequest) (*broker.Order, error)
	VerifyPurchase(ctx context.Context, token string) (*broker.Purchase, error)
	CommitPurchase(ctx context.Context, p *broker.Purchase) (*broker.CommitResult, error)
	GetTransfers(ctx context.Context, uid broker.UIDFilter, limit broker.LimitFilter) ([]broker.Transfer, error)
	GetActiveVouchers(ctx context.Context) ([]broker.Voucher, error)
	GetVouchers(ctx context.Context) ([]broker.Voucher, error)
	CreateVoucher(ctx context.Context, req broker.VoucherRequest) (*broker.Voucher, error)
	RewardUser(ctx context.Context, huid string, amount decimal.Decimal, description string) (*broker.Reward, error)
}

type App struct {
	config   *config.Config
	broker   brokerAPI
	logger   logging.Logger
	userName string
	reader   *bufio.Reader
	out      io.Writer

	// last verified purchase, waiting for commit
	pending *broker.Purchase
}

// NewApp builds the broker client from c. Missing credentials are asked for
// on the terminal.
func NewApp(c *config.Config) (*App, error) {
	env, err := c.Endpoints()
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(os.Stdin)

	userName := c.Username
	if userName == "" {
		userName, err = getSimpleText(reader, "Enter username", os.Stdout)
		if err != nil {
			return nil, err
		}
	}

	password := []byte(c.Password)
	if len(password) == 0 {
		password, err = getPassword(os.Stdout)
		if err != nil {
			return nil, err
		}
	}
	defer cryptox.WipeByteArray(password)

	logger := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	opts := append(c.ClientOptions(), broker.WithLogger(logger))
	client := broker.New(userName, password, env, opts...)

	// the client keeps its own hashed copy
	c.Password = ""

	return &App{
		config:   c,
		broker:   client,
		logger:   logger,
		userName: userName,
		reader:   reader,
		out:      os.Stdout,
	}, nil
}

func (a *App) getStatus() string {
	s := a.userName
	if a.config != nil && a.config.Environment != "" {
		s = fmt.Sprintf("%s %s", s, a.config.Environment)
	}
	if a.pending != nil {
		s = fmt.Sprintf("%s, purchase %d pending", s, a.pending.PurchaseID)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	env := a.broker.Endpoints()
	a.logger.Info(ctx, "vingd cli started", "backend", env.Backend, "user", a.userName)

	printlnFn("Vingd broker CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
