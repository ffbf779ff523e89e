package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vingd/internal/safeformat"
	"github.com/shopspring/decimal"
)

// Token is what a buyer brings back from the frontend after paying an order.
type Token struct {
	OID int64  `json:"oid"`
	TID string `json:"tid"`
}

// ParseToken decodes a token received as a callback query parameter. Tokens
// that went through a layer adding backslash escapes are accepted too.
func ParseToken(s string) (Token, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		if err := json.Unmarshal([]byte(stripSlashes(s)), &raw); err != nil {
			return Token{}, fmt.Errorf("%w: invalid token format", ErrInvalidToken)
		}
	}

	var tok Token
	if v, ok := raw["oid"]; ok {
		var oid flexInt
		if json.Unmarshal(v, &oid) == nil {
			tok.OID = int64(oid)
		}
	}
	if v, ok := raw["tid"]; ok {
		_ = json.Unmarshal(v, &tok.TID)
	}
	return tok, tok.validate()
}

func (t Token) validate() error {
	if t.OID == 0 {
		return fmt.Errorf("%w: invalid object identifier", ErrInvalidToken)
	}
	if t.TID == "" {
		return fmt.Errorf("%w: missing tid", ErrInvalidToken)
	}
	return nil
}

// stripSlashes removes one level of backslash escaping.
func stripSlashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Purchase is a verified, not yet committed purchase.
type Purchase struct {
	Object     string `json:"object"`
	HUID       string `json:"huid"`
	PurchaseID int64  `json:"purchaseid"`
	TransferID int64  `json:"transferid"`
	Context    string `json:"context,omitempty"`
}

func (p *Purchase) UnmarshalJSON(b []byte) error {
	var raw struct {
		Object     string   `json:"object"`
		HUID       string   `json:"huid"`
		PurchaseID *flexInt `json:"purchaseid"`
		TransferID *flexInt `json:"transferid"`
		Context    *string  `json:"context"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Purchase{Object: raw.Object, HUID: raw.HUID}
	if raw.PurchaseID != nil {
		p.PurchaseID = int64(*raw.PurchaseID)
	}
	if raw.TransferID != nil {
		p.TransferID = int64(*raw.TransferID)
	}
	if raw.Context != nil {
		p.Context = *raw.Context
	}
	return nil
}

// VerifyPurchase checks a token string as received on the callback URL.
// Malformed tokens fail with ErrInvalidToken before any request is made.
func (c *Client) VerifyPurchase(ctx context.Context, token string) (*Purchase, error) {
	tok, err := ParseToken(token)
	if err != nil {
		return nil, err
	}
	return c.VerifyToken(ctx, tok)
}

// VerifyToken asks the broker whether tok grants access to its object. A
// successful answer means the buyer's funds are reserved until CommitPurchase.
func (c *Client) VerifyToken(ctx context.Context, tok Token) (*Purchase, error) {
	if err := tok.validate(); err != nil {
		return nil, err
	}
	resource, err := safeformat.Format("/objects/{:int}/tokens/{:hex}", tok.OID, tok.TID)
	if err != nil {
		return nil, err
	}
	var p Purchase
	if err := c.request(ctx, http.MethodGet, resource, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

type CommitResult struct {
	OK bool `json:"ok"`
}

// CommitPurchase finalizes a verified purchase after the content was
// delivered. Uncommitted purchases are refunded by the broker. A success
// response without data counts as committed.
func (c *Client) CommitPurchase(ctx context.Context, p *Purchase) (*CommitResult, error) {
	if p == nil {
		return nil, fmt.Errorf("commit purchase: no purchase given")
	}
	resource, err := safeformat.Format("/purchases/{:int}", p.PurchaseID)
	if err != nil {
		return nil, err
	}
	payload := struct {
		TransferID int64 `json:"transferid"`
	}{TransferID: p.TransferID}

	data, err := c.call(ctx, http.MethodPut, resource, payload)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || string(data) == "null" {
		return &CommitResult{OK: true}, nil
	}
	var res CommitResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, &ConnectionError{Err: fmt.Errorf("decode commit: %w", err)}
	}
	return &res, nil
}

// AuthorizedPurchase is the outcome of a delegated purchase.
type AuthorizedPurchase struct {
	PurchaseID int64 `json:"purchaseid"`
	TransferID int64 `json:"transferid"`
}

func (a *AuthorizedPurchase) UnmarshalJSON(b []byte) error {
	var raw struct {
		PurchaseID  *flexInt `json:"purchaseid"`
		PurchaseID2 *flexInt `json:"purchase_id"`
		TransferID  *flexInt `json:"transferid"`
		TransferID2 *flexInt `json:"transfer_id"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*a = AuthorizedPurchase{
		PurchaseID: firstInt(raw.PurchaseID, raw.PurchaseID2),
		TransferID: firstInt(raw.TransferID, raw.TransferID2),
	}
	return nil
}

// AuthorizedPurchaseObject buys oid at price on behalf of the delegate user
// huid and commits it immediately.
func (c *Client) AuthorizedPurchaseObject(ctx context.Context, oid int64, price decimal.Decimal, huid string) (*AuthorizedPurchase, error) {
	resource, err := safeformat.Format("/objects/{:int}/purchases", oid)
	if err != nil {
		return nil, err
	}
	payload := struct {
		Price      int64  `json:"price"`
		HUID       string `json:"huid"`
		Autocommit bool   `json:"autocommit"`
	}{Price: ToMinorUnits(price), HUID: huid, Autocommit: true}

	var res AuthorizedPurchase
	if err := c.request(ctx, http.MethodPost, resource, payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func firstInt(vals ...*flexInt) int64 {
	for _, v := range vals {
		if v != nil {
			return int64(*v)
		}
	}
	return 0
}
