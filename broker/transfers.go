package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vingd/internal/datex"
	"github.com/dmitrijs2005/vingd/internal/safeformat"
	"github.com/shopspring/decimal"
)

// Transfer classes.
const (
	ClassPurchase                 = 1
	ClassAdReward                 = 2
	ClassSellerPayout             = 3
	ClassAdDeposit                = 4
	ClassCurrencyExchange         = 5
	ClassDirectTransfer           = 6
	ClassRefund                   = 7
	ClassUnverifiedPurchaseRefund = 8
	ClassVoucherAllocated         = 9
	ClassVoucherDeposited         = 10
)

var transferClassNames = map[int]string{
	ClassPurchase:                 "Purchase",
	ClassAdReward:                 "Ad reward",
	ClassSellerPayout:             "Seller payout",
	ClassAdDeposit:                "Ad deposit",
	ClassCurrencyExchange:         "Currency exchange",
	ClassDirectTransfer:           "Direct transfer",
	ClassRefund:                   "Refund",
	ClassUnverifiedPurchaseRefund: "Unverified purchase refund",
	ClassVoucherAllocated:         "Voucher allocated",
	ClassVoucherDeposited:         "Voucher deposited",
}

// TransferClassName returns the display name of class, or "" if unknown.
func TransferClassName(class int) string {
	return transferClassNames[class]
}

// TransferDescription always has a class; other keys (oid, object, count,
// fee, ...) depend on it and are kept in Fields. A description that is not a
// JSON object (free text from manual payouts) decodes to class 0 with the
// text under Fields["text"].
type TransferDescription struct {
	Class     int            `json:"class"`
	Classname string         `json:"classname"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func (d *TransferDescription) UnmarshalJSON(b []byte) error {
	b = unwrapJSONString(b)

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		*d = TransferDescription{Fields: map[string]any{"text": string(b)}}
		return nil
	}
	*d = TransferDescription{}
	if v, ok := raw["class"]; ok {
		var class flexInt
		if err := json.Unmarshal(v, &class); err == nil {
			d.Class = int(class)
		}
	}
	d.Classname = TransferClassName(d.Class)
	d.Fields = extraFields(raw, "class", "classname")
	return nil
}

type Transfer struct {
	ID          int64               `json:"id"`
	Amount      decimal.Decimal     `json:"amount"`
	FromUID     int64               `json:"uid_from"`
	ToUID       int64               `json:"uid_to"`
	ProxyUID    int64               `json:"uid_proxy"`
	Timestamp   string              `json:"timestamp"`
	Description TransferDescription `json:"description"`
}

func (t *Transfer) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID          *flexInt        `json:"id"`
		TransferID  *flexInt        `json:"transfer_id"`
		Amount      decimal.Decimal `json:"amount"`
		UIDFrom     *flexInt        `json:"uid_from"`
		FromUID     *flexInt        `json:"from_uid"`
		UIDTo       *flexInt        `json:"uid_to"`
		ToUID       *flexInt        `json:"to_uid"`
		UIDProxy    *flexInt        `json:"uid_proxy"`
		ProxyUID    *flexInt        `json:"proxy_uid"`
		Timestamp   string          `json:"timestamp"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*t = Transfer{
		ID:        firstInt(raw.ID, raw.TransferID),
		Amount:    minorToMajor(raw.Amount),
		FromUID:   firstInt(raw.UIDFrom, raw.FromUID),
		ToUID:     firstInt(raw.UIDTo, raw.ToUID),
		ProxyUID:  firstInt(raw.UIDProxy, raw.ProxyUID),
		Timestamp: raw.Timestamp,
	}
	if len(raw.Description) > 0 && string(raw.Description) != "null" {
		if err := json.Unmarshal(raw.Description, &t.Description); err != nil {
			return fmt.Errorf("transfer %d description: %w", t.ID, err)
		}
	}
	return nil
}

// UIDFilter restricts transfers by account. The broker requires at least
// one side to be the authenticated account.
type UIDFilter struct {
	From *int64
	To   *int64
}

// LimitFilter restricts transfers by count and time. Since and Until accept
// any datex expression.
type LimitFilter struct {
	First *int
	Last  *int
	Since string
	Until string
}

// GetTransfers lists transfers of the authenticated account matching the
// filters.
func (c *Client) GetTransfers(ctx context.Context, uid UIDFilter, limit LimitFilter) ([]Transfer, error) {
	var b strings.Builder
	b.WriteString("/fort/transfers")

	segments := []struct {
		name string
		val  any
	}{
		{"from", deref(uid.From)},
		{"to", deref(uid.To)},
		{"first", deref(limit.First)},
		{"last", deref(limit.Last)},
	}
	for _, s := range segments {
		if s.val == nil {
			continue
		}
		seg, err := safeformat.Format("/"+s.name+"={:int}", s.val)
		if err != nil {
			return nil, err
		}
		b.WriteString(seg)
	}

	for _, s := range []struct{ name, val string }{{"since", limit.Since}, {"until", limit.Until}} {
		if s.val == "" {
			continue
		}
		ts, err := datex.ToISOBasic(s.val, "")
		if err != nil {
			return nil, err
		}
		b.WriteString("/" + s.name + "=" + ts)
	}

	var transfers []Transfer
	if err := c.request(ctx, http.MethodGet, b.String(), nil, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
