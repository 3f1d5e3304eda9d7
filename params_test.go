package signpost

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signpost-go/signpost/errors"
)

func TestConvertParam(t *testing.T) {
	t.Run("it should convert per type tag", func(t *testing.T) {
		v, err := convertParam(TypeString, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", v)

		v, err = convertParam(TypeInt, "42")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)

		v, err = convertParam(TypeFloat, "3.5")
		require.NoError(t, err)
		assert.Equal(t, 3.5, v)

		id := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
		v, err = convertParam(TypeUUID, id.String())
		require.NoError(t, err)
		assert.Equal(t, id, v)

		v, err = convertParam(TypePath, "a/b/c.txt")
		require.NoError(t, err)
		assert.Equal(t, "a/b/c.txt", v)
	})

	t.Run("it should fail conversion for unparseable values", func(t *testing.T) {
		examples := map[TypeTag]string{
			TypeInt:   "not-a-number",
			TypeFloat: "1.2.3",
			TypeUUID:  "not-a-uuid",
		}

		for tag, raw := range examples {
			_, err := convertParam(tag, raw)
			require.Error(t, err)
			assert.Equal(t, errors.ErrorParameterConversion.Key, errors.Kind(err))
		}
	})
}

func TestParams(t *testing.T) {
	t.Run("it should get typed values", func(t *testing.T) {
		p := &Params{}
		p.set("id", int64(7))
		p.set("slug", "hello")
		p.set("ratio", 0.25)

		assert.Equal(t, int64(7), p.GetInt("id"))
		assert.Equal(t, "hello", p.GetString("slug"))
		assert.Equal(t, 0.25, p.GetFloat("ratio"))
		assert.Equal(t, 3, p.Len())

		v, ok := p.Value("slug")
		assert.True(t, ok)
		assert.Equal(t, "hello", v)
	})

	t.Run("it should return zero values for missing keys", func(t *testing.T) {
		p := &Params{}

		assert.Nil(t, p.Get("missing"))
		assert.Equal(t, "", p.GetString("missing"))
		assert.Equal(t, int64(0), p.GetInt("missing"))
		assert.Equal(t, uuid.Nil, p.GetUUID("missing"))
	})

	t.Run("it should be nil safe", func(t *testing.T) {
		var p *Params

		assert.Equal(t, 0, p.Len())
		assert.Nil(t, p.Get("anything"))
	})

	t.Run("it should overflow past eight values", func(t *testing.T) {
		p := &Params{}
		for i := 0; i < 12; i++ {
			p.set(fmt.Sprintf("k%d", i), int64(i))
		}

		assert.Equal(t, 12, p.Len())
		assert.Equal(t, int64(2), p.GetInt("k2"))
		assert.Equal(t, int64(11), p.GetInt("k11"))
	})
}
