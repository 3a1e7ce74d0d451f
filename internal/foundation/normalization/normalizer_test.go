package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redirectMode string

const (
	redirectDisabled   redirectMode = "disabled"
	redirectAttachment redirectMode = "attachment"
	redirectParent     redirectMode = "parent"
)

func newRedirectNormalizer() *Normalizer[redirectMode] {
	return NewNormalizer("attachment redirect", map[string]redirectMode{
		"disabled":   redirectDisabled,
		"attachment": redirectAttachment,
		"parent":     redirectParent,
	}, redirectAttachment)
}

func TestNormalizer_Normalize(t *testing.T) {
	n := newRedirectNormalizer()

	tests := []struct {
		name  string
		input string
		want  redirectMode
	}{
		{"exact match", "disabled", redirectDisabled},
		{"case insensitive", "PARENT", redirectParent},
		{"with spaces", "  disabled ", redirectDisabled},
		{"empty falls back", "", redirectAttachment},
		{"unknown falls back", "sideways", redirectAttachment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalizer_NormalizeStrict(t *testing.T) {
	n := newRedirectNormalizer()

	v, err := n.NormalizeStrict("Parent")
	require.NoError(t, err)
	assert.Equal(t, redirectParent, v)

	v, err = n.NormalizeStrict("")
	require.NoError(t, err)
	assert.Equal(t, redirectAttachment, v)

	_, err = n.NormalizeStrict("sideways")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid attachment redirect")
	assert.Contains(t, err.Error(), "[attachment disabled parent]")
}

func TestNormalizer_ValidKeysIsACopy(t *testing.T) {
	n := newRedirectNormalizer()
	keys := n.ValidKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"attachment", "disabled", "parent"}, n.ValidKeys())
}
