package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("query string", func(t *testing.T) {
		out, err := Decode("a=1&b=2")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "b": "2"}, out)
	})

	t.Run("leading question mark", func(t *testing.T) {
		out, err := Decode("?a=1")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1"}, out)
	})

	t.Run("repeated key keeps last value", func(t *testing.T) {
		out, err := Decode("a=1&a=2&a=3")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "3"}, out)
	})

	t.Run("empty string", func(t *testing.T) {
		out, err := Decode("")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("percent decoding", func(t *testing.T) {
		out, err := Decode("msg=hello%20world&plus=a%2Bb")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"msg": "hello world", "plus": "a+b"}, out)
	})

	t.Run("malformed pair is dropped, rest survive", func(t *testing.T) {
		out, err := Decode("a=1&b=%zz&c=3")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "1", "c": "3"}, out)
	})

	t.Run("value without equals", func(t *testing.T) {
		out, err := Decode("flag")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"flag": ""}, out)
	})

	t.Run("url.Values", func(t *testing.T) {
		out, err := Decode(url.Values{"a": {"1", "2"}, "b": {"x"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "2", "b": "x"}, out)
	})

	t.Run("string slice map", func(t *testing.T) {
		out, err := Decode(map[string][]string{"a": {"first", "last"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "last"}, out)
	})

	t.Run("empty value slice", func(t *testing.T) {
		out, err := Decode(map[string][]string{"a": {}})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": ""}, out)
	})

	t.Run("flat string map is copied", func(t *testing.T) {
		in := map[string]string{"a": "1"}

		out, err := Decode(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)

		out["a"] = "changed"
		assert.Equal(t, "1", in["a"])
	})

	t.Run("unsupported input type", func(t *testing.T) {
		_, err := Decode(42)
		assert.ErrorIs(t, err, ErrUnsupportedInput)
	})

	t.Run("nil input", func(t *testing.T) {
		_, err := Decode(nil)
		assert.ErrorIs(t, err, ErrUnsupportedInput)
	})
}

func TestEncode(t *testing.T) {
	t.Run("strings only", func(t *testing.T) {
		out := Encode(map[string]any{"b": "2", "a": "1"})
		assert.Equal(t, "a=1&b=2", out)
	})

	t.Run("non-string values are skipped", func(t *testing.T) {
		out := Encode(map[string]any{
			"keep":  "yes",
			"num":   42,
			"truth": true,
			"blank": nil,
			"list":  []string{"a"},
		})
		assert.Equal(t, "keep=yes", out)
	})

	t.Run("escaping", func(t *testing.T) {
		out := Encode(map[string]any{"msg": "hello world"})
		assert.Equal(t, "msg=hello+world", out)
	})

	t.Run("empty map", func(t *testing.T) {
		assert.Equal(t, "", Encode(nil))
		assert.Equal(t, "", Encode(map[string]any{}))
	})
}

func TestEncodeStrings(t *testing.T) {
	out := EncodeStrings(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, "a=1&b=2", out)
}

func TestRoundTrip(t *testing.T) {
	t.Run("encode then decode keeps string entries", func(t *testing.T) {
		in := map[string]any{
			"name":  "alice",
			"city":  "porto",
			"count": 3,
		}

		out, err := Decode(Encode(in))
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"name": "alice", "city": "porto"}, out)
	})
}
