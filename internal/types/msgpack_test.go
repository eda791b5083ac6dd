package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncodeMsgpack_KeepsKeyOrder(t *testing.T) {
	v := mustParse(t, `{"Zeta":1,"Alpha":[2688,"x",null,true],"Mid":{"F":2.8}}`)

	data, err := msgpack.Marshal(v)
	require.NoError(t, err)

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeMapLen()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	var keys []string
	vals := map[string]any{}
	for range n {
		k, err := dec.DecodeString()
		require.NoError(t, err)
		val, err := dec.DecodeInterfaceLoose()
		require.NoError(t, err)
		keys = append(keys, k)
		vals[k] = val
	}

	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, keys)
	assert.Equal(t, int64(1), vals["Zeta"])
	assert.Equal(t, []any{int64(2688), "x", nil, true}, vals["Alpha"])
	assert.Equal(t, map[string]any{"F": 2.8}, vals["Mid"])
}

func TestEncodeMsgpack_Numbers(t *testing.T) {
	tests := []struct {
		lit  string
		want any
	}{
		{"-7", int64(-7)},
		{"18446744073709551615", uint64(18446744073709551615)},
		{"1.0", 1.0},
		{"1e3", 1000.0},
		{"1e400", "1e400"},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			data, err := msgpack.Marshal(mustParse(t, tt.lit))
			require.NoError(t, err)

			got, err := msgpack.NewDecoder(bytes.NewReader(data)).DecodeInterfaceLoose()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
