package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PS_EXPAND_A", "alpha")
	t.Setenv("PS_EXPAND_EMPTY", "")

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain", input: "scripts/portal", want: "scripts/portal"},
		{name: "set", input: "${PS_EXPAND_A}/x", want: "alpha/x"},
		{name: "set but empty", input: "[${PS_EXPAND_EMPTY:fallback}]", want: "[]"},
		{name: "fallback", input: "${PS_EXPAND_UNSET:/tmp}/x", want: "/tmp/x"},
		{name: "empty fallback", input: "a${PS_EXPAND_UNSET:}b", want: "ab"},
		{name: "missing", input: "${PS_EXPAND_UNSET}/x", want: "${PS_EXPAND_UNSET}/x", wantErr: true},
		{
			name:    "mixed",
			input:   "${PS_EXPAND_A}/${PS_EXPAND_UNSET}",
			want:    "alpha/${PS_EXPAND_UNSET}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnvVars(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
