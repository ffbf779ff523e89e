package broker

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

type Reward struct {
	TransferID int64 `json:"transfer_id"`
}

func (r *Reward) UnmarshalJSON(b []byte) error {
	var raw struct {
		TransferID  *flexInt `json:"transfer_id"`
		TransferID2 *flexInt `json:"transferid"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.TransferID = firstInt(raw.TransferID, raw.TransferID2)
	return nil
}

// RewardUser transfers amount vingds from the authenticated account to the
// user huid. The account needs the transfer.outbound permission.
func (c *Client) RewardUser(ctx context.Context, huid string, amount decimal.Decimal, description string) (*Reward, error) {
	payload := struct {
		HUIDTo      string  `json:"huid_to"`
		Amount      int64   `json:"amount"`
		Description *string `json:"description"`
	}{HUIDTo: huid, Amount: ToMinorUnits(amount)}
	if description != "" {
		payload.Description = &description
	}

	var r Reward
	if err := c.request(ctx, http.MethodPost, "/rewards/", payload, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
