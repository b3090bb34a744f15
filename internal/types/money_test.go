package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUSD(t *testing.T) {
	cases := []struct {
		in   string
		want USD
	}{
		{"5", 50000},
		{"5.0", 50000},
		{"5.0000", 50000},
		{"0.0001", 1},
		{"12.5", 125000},
		{"-3.25", -32500},
	}
	for _, tc := range cases {
		got, err := ParseUSD(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "abc", "1.23456", "1,50", "$5"} {
		_, err := ParseUSD(bad)
		require.Error(t, err, bad)
	}
}

func TestUSDString(t *testing.T) {
	require.Equal(t, "5.0000", USD(50000).String())
	require.Equal(t, "0.0001", USD(1).String())
	require.Equal(t, "0.0000", USD(0).String())
}

func TestUSDJSONRoundTrip(t *testing.T) {
	price := USD(125000)
	raw, err := json.Marshal(price)
	require.NoError(t, err)
	require.Equal(t, `"12.5000"`, string(raw))

	var decoded USD
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, price, decoded)

	// Bare numbers from older clients still decode.
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &decoded))
	require.Equal(t, price, decoded)
}
