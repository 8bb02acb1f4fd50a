package troubleshoot_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltcraft/troubleshoot"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "Plain", input: "2", want: "2"},
		{name: "Keeps Whitespace", input: "back\t\r\n", want: "back\t\r\n"},
		{name: "Strips ANSI Escape", input: "\x1b[31m1\x1b[0m", want: "[31m1[0m"},
		{name: "Strips NUL And BEL", input: "q\x00\x07", want: "q"},
		{name: "Too Large", input: strings.Repeat("9", troubleshoot.MaxInputSize+1), wantErr: troubleshoot.ErrInputTooLarge},
		{name: "Invalid UTF8", input: "\xff\xfe", wantErr: troubleshoot.ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := troubleshoot.SanitizeInput(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
