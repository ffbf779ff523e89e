package netx

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcatURL(t *testing.T) {
	tests := []struct {
		name, base, query, want string
	}{
		{"no query", "https://www.vingd.com/orders/17/add/", "", "https://www.vingd.com/orders/17/add/"},
		{"first param", "https://www.vingd.com/vouchers/X", "a=1", "https://www.vingd.com/vouchers/X?a=1"},
		{"existing query", "https://www.vingd.com/x?a=1", "b=2", "https://www.vingd.com/x?a=1&b=2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConcatURL(tt.base, tt.query))
		})
	}
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://h/p?context=abc+d", BuildURL("https://h/p", url.Values{"context": {"abc d"}}))
	assert.Equal(t, "https://h/p", BuildURL("https://h/p", nil))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "https://api.vingd.com/broker/v1/fort/accounts/", JoinPath("https://api.vingd.com/broker/v1/", "/fort/accounts/"))
}
