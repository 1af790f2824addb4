package api

import (
	"fmt"
	"strings"
)

// Params is an ordered set of query parameters. The game server is picky
// about little, but the original client always emitted parameters in
// insertion order and we keep that property.
type Params struct {
	pairs []pair
}

type pair struct {
	key   string
	value any
}

func NewParams() *Params {
	return &Params{}
}

// BaseParams returns the baseline parameters every game API command carries.
func BaseParams() *Params {
	return NewParams().
		Set("language_id", 1).
		Set("timestamp", 0).
		Set("request_id", 0).
		Set("network_id", 11).
		Set("mobile_client_version", 999)
}

// Set replaces the value for key if present, otherwise appends it.
func (p *Params) Set(key string, value any) *Params {
	for i := range p.pairs {
		if p.pairs[i].key == key {
			p.pairs[i].value = value
			return p
		}
	}
	p.pairs = append(p.pairs, pair{key: key, value: value})
	return p
}

func (p *Params) Get(key string) (string, bool) {
	for _, kv := range p.pairs {
		if kv.key == key {
			return fmt.Sprint(kv.value), true
		}
	}
	return "", false
}

// Encode renders the parameters as a query string fragment, values
// stringified, insertion order preserved. Values are expected to be already
// transport-safe; codes go through EscapeCode first.
func (p *Params) Encode() string {
	parts := make([]string, 0, len(p.pairs))
	for _, kv := range p.pairs {
		parts = append(parts, kv.key+"="+fmt.Sprint(kv.value))
	}
	return strings.Join(parts, "&")
}

// EscapeCode makes a promotion code safe to embed in a query string. Codes
// may contain & and #, which would otherwise split the query or truncate
// the URL. One-directional, transport only.
func EscapeCode(code string) string {
	return strings.NewReplacer("&", "%26", "#", "%23").Replace(code)
}
