package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/vingd/internal/safeformat"
)

// MaxDescriptionSize bounds the serialized object description.
const MaxDescriptionSize = 4096

// ObjectDescription is what the broker shows buyers about a sellable object.
// Extra keys are sent alongside name and url in the same JSON object.
type ObjectDescription struct {
	Name  string
	URL   string
	Extra map[string]any
}

func (d ObjectDescription) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(d.Extra)+2)
	for k, v := range d.Extra {
		m[k] = v
	}
	m["name"] = d.Name
	m["url"] = d.URL
	return json.Marshal(m)
}

func (d *ObjectDescription) UnmarshalJSON(b []byte) error {
	b = unwrapJSONString(b)

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	*d = ObjectDescription{}
	if v, ok := m["name"].(string); ok {
		d.Name = v
	}
	if v, ok := m["url"].(string); ok {
		d.URL = v
	}
	delete(m, "name")
	delete(m, "url")
	if len(m) > 0 {
		d.Extra = m
	}
	return nil
}

func (d ObjectDescription) validate() error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode description: %w", err)
	}
	if len(b) > MaxDescriptionSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrDescriptionTooLarge, len(b), MaxDescriptionSize)
	}
	return nil
}

// Object is a registered sellable object.
type Object struct {
	ID          int64             `json:"id"`
	Description ObjectDescription `json:"description"`
	Raw         json.RawMessage   `json:"-"`
}

func (o *Object) UnmarshalJSON(b []byte) error {
	var raw struct {
		OID         *flexInt        `json:"oid"`
		ID          *flexInt        `json:"id"`
		Description json.RawMessage `json:"description"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*o = Object{Raw: append(json.RawMessage(nil), b...)}
	switch {
	case raw.OID != nil:
		o.ID = int64(*raw.OID)
	case raw.ID != nil:
		o.ID = int64(*raw.ID)
	}
	if len(raw.Description) > 0 && string(raw.Description) != "null" {
		if err := json.Unmarshal(raw.Description, &o.Description); err != nil {
			return fmt.Errorf("object %d description: %w", o.ID, err)
		}
	}
	return nil
}

type objectPayload struct {
	Description ObjectDescription `json:"description"`
}

// CreateObject registers a new object and returns the id assigned to it.
func (c *Client) CreateObject(ctx context.Context, desc ObjectDescription) (int64, error) {
	if err := desc.validate(); err != nil {
		return 0, err
	}
	data, err := c.call(ctx, http.MethodPost, "/registry/objects/", objectPayload{Description: desc})
	if err != nil {
		return 0, err
	}
	return unpackBatchResponse(data, "oid")
}

// UpdateObject replaces the description of object oid.
func (c *Client) UpdateObject(ctx context.Context, oid int64, desc ObjectDescription) (int64, error) {
	resource, err := safeformat.Format("/registry/objects/{:int}/", oid)
	if err != nil {
		return 0, err
	}
	if err := desc.validate(); err != nil {
		return 0, err
	}
	data, err := c.call(ctx, http.MethodPut, resource, objectPayload{Description: desc})
	if err != nil {
		return 0, err
	}
	return unpackBatchResponse(data, "oid")
}

func (c *Client) GetObject(ctx context.Context, oid int64) (*Object, error) {
	resource, err := safeformat.Format("/registry/objects/{:int}/", oid)
	if err != nil {
		return nil, err
	}
	var obj Object
	if err := c.request(ctx, http.MethodGet, resource, nil, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// GetObjects lists every object registered by the account.
func (c *Client) GetObjects(ctx context.Context) ([]Object, error) {
	var objs []Object
	if err := c.request(ctx, http.MethodGet, "/registry/objects/", nil, &objs); err != nil {
		return nil, err
	}
	return objs, nil
}

// unwrapJSONString returns the content of b when b is a JSON string holding
// JSON, as some endpoints double-encode nested documents.
func unwrapJSONString(b []byte) []byte {
	if len(b) == 0 || b[0] != '"' {
		return b
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return b
	}
	return []byte(s)
}
