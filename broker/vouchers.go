package broker

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/dmitrijs2005/vingd/internal/datex"
	"github.com/shopspring/decimal"
)

var groupIDPattern = regexp.MustCompile(`^[-_a-zA-Z0-9]{1,32}$`)

// VoucherRequest describes a voucher to issue. A user can redeem only one
// voucher per GroupID. Until accepts any datex expression; empty means
// DefaultVoucherExpiry.
type VoucherRequest struct {
	Amount      decimal.Decimal
	Until       string
	Message     string
	GroupID     string
	Description string
	LinkParams  url.Values
}

// Voucher is the normalized form of both voucher layouts the broker uses.
// Action and Created are only set on voucher history entries.
type Voucher struct {
	Amount      decimal.Decimal `json:"amount"`
	TransferID  int64           `json:"transfer_id"`
	Description string          `json:"description,omitempty"`
	Message     string          `json:"message,omitempty"`
	ValidUntil  string          `json:"valid_until"`
	Code        string          `json:"code"`
	GroupID     string          `json:"group_id,omitempty"`
	URLs        Links           `json:"urls"`
	Action      string          `json:"action,omitempty"`
	Created     string          `json:"created,omitempty"`
}

// rawVoucher accepts the legacy field names next to the simplified ones.
type rawVoucher struct {
	AmountVouched  *decimal.Decimal `json:"amount_vouched"`
	Amount         *decimal.Decimal `json:"amount"`
	IDFortTransfer *flexInt         `json:"id_fort_transfer"`
	TransferID     *flexInt         `json:"transfer_id"`
	Description    *string          `json:"description"`
	Message        *string          `json:"message"`
	TSValidUntil   string           `json:"ts_valid_until"`
	ValidUntil     string           `json:"valid_until"`
	VIDEncoded     string           `json:"vid_encoded"`
	Code           string           `json:"code"`
	GID            *string          `json:"gid"`
	GroupID        *string          `json:"group_id"`
	Action         string           `json:"action"`
	TSCreated      string           `json:"ts_created"`
	Created        string           `json:"created"`
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstStringPtr(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return ""
}

// normalizeVoucher maps a raw voucher to Voucher, converting the amount to
// vingds, dates to ISO-8601 and attaching frontend links.
func (c *Client) normalizeVoucher(raw rawVoucher, params url.Values) (Voucher, error) {
	v := Voucher{
		TransferID:  firstInt(raw.IDFortTransfer, raw.TransferID),
		Description: firstStringPtr(raw.Description),
		Message:     firstStringPtr(raw.Message),
		Code:        firstString(raw.VIDEncoded, raw.Code),
		GroupID:     firstStringPtr(raw.GID, raw.GroupID),
		Action:      raw.Action,
	}
	switch {
	case raw.AmountVouched != nil:
		v.Amount = minorToMajor(*raw.AmountVouched)
	case raw.Amount != nil:
		v.Amount = minorToMajor(*raw.Amount)
	default:
		v.Amount = decimal.Zero
	}

	validUntil, err := datex.ToISO(firstString(raw.TSValidUntil, raw.ValidUntil), "")
	if err != nil {
		return Voucher{}, fmt.Errorf("voucher %s expiry: %w", v.Code, err)
	}
	v.ValidUntil = validUntil

	if created := firstString(raw.TSCreated, raw.Created); created != "" {
		v.Created, err = datex.ToISO(created, "")
		if err != nil {
			return Voucher{}, fmt.Errorf("voucher %s creation time: %w", v.Code, err)
		}
	}

	if v.Code != "" {
		v.URLs, err = c.frontendLinks("/vouchers/{:string}", "/popup/vouchers/{:string}", url.PathEscape(v.Code), params)
		if err != nil {
			return Voucher{}, err
		}
	}
	return v, nil
}

func (c *Client) normalizeVouchers(raws []rawVoucher) ([]Voucher, error) {
	out := make([]Voucher, 0, len(raws))
	for _, r := range raws {
		v, err := c.normalizeVoucher(r, nil)
		if err != nil {
			return nil, &ConnectionError{Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

type voucherPayload struct {
	Amount      int64   `json:"amount"`
	Until       string  `json:"until"`
	Message     string  `json:"message"`
	Description *string `json:"description"`
	GID         *string `json:"gid"`
}

// CreateVoucher issues a voucher funded from the authenticated account.
// The account needs the voucher.add permission.
func (c *Client) CreateVoucher(ctx context.Context, req VoucherRequest) (*Voucher, error) {
	if req.GroupID != "" && !groupIDPattern.MatchString(req.GroupID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGroupID, req.GroupID)
	}
	until, err := datex.ToISOBasic(req.Until, DefaultVoucherExpiry)
	if err != nil {
		return nil, err
	}

	payload := voucherPayload{
		Amount:  ToMinorUnits(req.Amount),
		Until:   until,
		Message: req.Message,
	}
	if req.Description != "" {
		payload.Description = &req.Description
	}
	if req.GroupID != "" {
		payload.GID = &req.GroupID
	}

	var raw rawVoucher
	if err := c.request(ctx, http.MethodPost, "/vouchers/", payload, &raw); err != nil {
		return nil, err
	}
	v, err := c.normalizeVoucher(raw, req.LinkParams)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return &v, nil
}

// GetActiveVouchers lists vouchers that can still be redeemed.
func (c *Client) GetActiveVouchers(ctx context.Context) ([]Voucher, error) {
	var raws []rawVoucher
	if err := c.request(ctx, http.MethodGet, "/vouchers/", nil, &raws); err != nil {
		return nil, err
	}
	return c.normalizeVouchers(raws)
}

// GetVouchers lists the voucher log: every voucher event with its Action
// and Created time.
func (c *Client) GetVouchers(ctx context.Context) ([]Voucher, error) {
	var raws []rawVoucher
	if err := c.request(ctx, http.MethodGet, "/vouchers/history/", nil, &raws); err != nil {
		return nil, err
	}
	return c.normalizeVouchers(raws)
}
