package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersUseCanonicalKeys(t *testing.T) {
	assert.Equal(t, KeyTaxonomy, Taxonomy("category").Key)
	assert.Equal(t, "category", Taxonomy("category").Value.String())
	assert.Equal(t, int64(500), Limit(500).Value.Int64())
	assert.Equal(t, KeyNodeType, NodeType("WebPage").Key)
}

func TestError(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
