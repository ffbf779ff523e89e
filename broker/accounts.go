package broker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/vingd/internal/safeformat"
	"github.com/shopspring/decimal"
)

type account struct {
	Balance decimal.Decimal `json:"balance"`
}

// GetAccountBalance returns the balance of the authenticated account in
// vingds.
func (c *Client) GetAccountBalance(ctx context.Context) (decimal.Decimal, error) {
	var acc account
	if err := c.request(ctx, http.MethodGet, "/fort/accounts/", nil, &acc); err != nil {
		return decimal.Zero, err
	}
	return minorToMajor(acc.Balance), nil
}

// AuthorizedGetAccountBalance returns the balance of delegate user huid.
func (c *Client) AuthorizedGetAccountBalance(ctx context.Context, huid string) (decimal.Decimal, error) {
	resource, err := safeformat.Format("/fort/accounts/{:hex}", huid)
	if err != nil {
		return decimal.Zero, err
	}
	var acc account
	if err := c.request(ctx, http.MethodGet, resource, nil, &acc); err != nil {
		return decimal.Zero, err
	}
	return minorToMajor(acc.Balance), nil
}

// UserProfile keeps uid and username typed; everything else the broker
// returns is left in Fields.
type UserProfile struct {
	UID      int64          `json:"uid"`
	Username string         `json:"username,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

func (u *UserProfile) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*u = UserProfile{}
	if v, ok := raw["uid"]; ok {
		var uid flexInt
		if err := json.Unmarshal(v, &uid); err != nil {
			return err
		}
		u.UID = int64(uid)
	}
	if v, ok := raw["username"]; ok {
		_ = json.Unmarshal(v, &u.Username)
	}
	u.Fields = extraFields(raw, "uid", "username")
	return nil
}

// GetUserProfile returns the profile of the authenticated account.
func (c *Client) GetUserProfile(ctx context.Context) (*UserProfile, error) {
	key, _, _, _ := c.session()
	resource, err := safeformat.Format("/id/users/username={:string}", url.PathEscape(key))
	if err != nil {
		return nil, err
	}
	var p UserProfile
	if err := c.request(ctx, http.MethodGet, resource, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) GetUserID(ctx context.Context) (int64, error) {
	p, err := c.GetUserProfile(ctx)
	if err != nil {
		return 0, err
	}
	return p.UID, nil
}

// CreateUserRequest describes a delegate user. Identities maps an identity
// type ("email", ...) to its value; they are verified later by the broker.
type CreateUserRequest struct {
	Identities      map[string]string
	PrimaryIdentity string
	Permissions     []string
}

// DelegateUser is a user created on behalf of, and operated by, the caller.
type DelegateUser struct {
	HUID   string         `json:"huid"`
	Fields map[string]any `json:"fields,omitempty"`
}

func (d *DelegateUser) UnmarshalJSON(b []byte) error {
	// some deployments answer with the bare huid
	var huid string
	if json.Unmarshal(b, &huid) == nil {
		*d = DelegateUser{HUID: huid}
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = DelegateUser{}
	if v, ok := raw["huid"]; ok {
		_ = json.Unmarshal(v, &d.HUID)
	}
	d.Fields = extraFields(raw, "huid")
	return nil
}

// AuthorizedCreateUser creates a user profile and account and grants the
// caller the requested delegate permissions on it.
func (c *Client) AuthorizedCreateUser(ctx context.Context, req CreateUserRequest) (*DelegateUser, error) {
	payload := struct {
		Identities  map[string]string `json:"identities"`
		Primary     *string           `json:"primary_identity"`
		Permissions []string          `json:"delegate_permissions"`
	}{Identities: req.Identities, Permissions: req.Permissions}
	if req.PrimaryIdentity != "" {
		payload.Primary = &req.PrimaryIdentity
	}

	var u DelegateUser
	if err := c.request(ctx, http.MethodPost, "/id/users/", payload, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// extraFields decodes every member of raw except the listed keys. It returns
// nil when nothing is left.
func extraFields(raw map[string]json.RawMessage, skip ...string) map[string]any {
	for _, k := range skip {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if json.Unmarshal(v, &val) == nil {
			out[k] = val
		}
	}
	return out
}
