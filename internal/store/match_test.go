package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		pattern string
		want    bool
	}{
		{"bare star matches anything", "anything", "*", true},
		{"bare star matches empty-ish", "x", "*", true},
		{"prefix match", "user:1", "user:*", true},
		{"prefix mismatch", "product:1", "user:*", false},
		{"suffix match", "session:42:token", "*:token", true},
		{"suffix mismatch", "session:42:id", "*:token", false},
		{"prefix and suffix", "user:42:name", "user:*:name", true},
		{"prefix and suffix mismatch", "user:42:age", "user:*:name", false},
		{"exact match without star", "config", "config", true},
		{"exact mismatch without star", "config2", "config", false},
		{"overlap on short key", "ab", "a*b", true},
		{"prefix and suffix may overlap", "aba", "ab*ba", true},
		{"star matches empty middle", "userid", "user*id", true},
		{"second star is literal", "user*1", "u*er*1", true},
		{"second star not treated as wildcard", "userX1", "u*er*1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPattern(tt.key, tt.pattern))
		})
	}
}

func TestKeysPatternMatching(t *testing.T) {
	s := NewStore()

	s.Set("user:1", "john")
	s.Set("user:2", "jane")
	s.Set("product:1", "laptop")
	s.Set("product:2", "mouse")
	s.Set("config:debug", "true")

	userKeys := s.Keys("user:*")
	assert.ElementsMatch(t, []string{"user:1", "user:2"}, userKeys)

	productKeys := s.Keys("product:*")
	assert.ElementsMatch(t, []string{"product:1", "product:2"}, productKeys)

	configKeys := s.Keys("config:*")
	require.Len(t, configKeys, 1)
	assert.Equal(t, "config:debug", configKeys[0])

	all := s.Keys("*")
	assert.Len(t, all, 5)

	none := s.Keys("nonexistent:*")
	assert.Empty(t, none)
}
