package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaltUnmarshal(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var s Salt
		require.NoError(t, json.Unmarshal([]byte(`123456789`), &s))
		assert.Equal(t, Salt(123456789), s)
	})

	t.Run("legacy numeric string", func(t *testing.T) {
		var s Salt
		require.NoError(t, json.Unmarshal([]byte(`"987654321"`), &s))
		assert.Equal(t, Salt(987654321), s)
	})

	t.Run("non-numeric string", func(t *testing.T) {
		var s Salt
		assert.Error(t, json.Unmarshal([]byte(`"pepper"`), &s))
	})

	t.Run("wrong type", func(t *testing.T) {
		var s Salt
		assert.Error(t, json.Unmarshal([]byte(`[1]`), &s))
	})
}

func TestSaltMarshalAsNumber(t *testing.T) {
	raw, err := json.Marshal(Salt(42))
	require.NoError(t, err)
	assert.Equal(t, "42", string(raw))
}

func TestLegacySaltRoundTripKeepsDigestInput(t *testing.T) {
	// A record saved with salt "555" must decode to the same numeric value
	// a fresh record stores, so hash(password+salt) keeps matching.
	var legacy, fresh User

	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b","salt":"555"}`), &legacy))
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b","salt":555}`), &fresh))

	assert.Equal(t, fresh.Salt, legacy.Salt)
}
