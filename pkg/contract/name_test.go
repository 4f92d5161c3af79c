package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type counter struct{ n int }

func (c *counter) Inc() int { c.n++; return c.n }

func TestShortName(t *testing.T) {
	tests := []struct {
		symbol string
		want   string
	}{
		{"main.add", "add"},
		{"github.com/Feralthedogg/novum-contract/pkg/predicate.Positive[...]", "Positive[...]"},
		{"gopkg.in/yaml.v3.Marshal", "Marshal"},
		{"gopkg.in/yaml%2ev3.Marshal", "Marshal"},
		{"example.com/x/yaml.v3.(*Decoder).Decode", "(*Decoder).Decode"},
		{"example.com/x/api.v12.Add.func1", "Add.func1"},
		{"example.com/x/store.(*Store).Put-fm", "(*Store).Put"},
		{"example.com/x/store.v2", "v2"},
		{"noPackage", "noPackage"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, shortName(tt.symbol))
		})
	}
}

func TestFuncNameFromRuntime(t *testing.T) {
	c := &counter{}

	assert.Equal(t, "TestFuncNameFromRuntime", funcName(TestFuncNameFromRuntime))
	assert.Equal(t, "(*counter).Inc", funcName(c.Inc))
	assert.Equal(t, "<unknown>", funcName(nil))
	assert.Equal(t, "<unknown>", funcName(42))
}
