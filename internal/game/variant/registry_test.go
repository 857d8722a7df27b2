package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/duel/internal/game/variant"
)

func TestRegistry(t *testing.T) {
	reg, err := variant.NewRegistry([]*variant.Template{
		{ID: "rogue", Name: "Rogue"},
		{ID: "knight", Name: "Knight"},
	})
	require.NoError(t, err)

	got, ok := reg.Get("knight")
	require.True(t, ok)
	assert.Equal(t, "Knight", got.Name)

	_, ok = reg.Get("bard")
	assert.False(t, ok)

	assert.Equal(t, []string{"knight", "rogue"}, reg.IDs())
}

func TestRegistry_DuplicateID(t *testing.T) {
	_, err := variant.NewRegistry([]*variant.Template{
		{ID: "knight", Name: "Knight"},
		{ID: "knight", Name: "Other Knight"},
	})
	assert.Error(t, err)
}
