package ali_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ali"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Plain", "CREATE PANE LEFT", "CREATE PANE LEFT", nil},
		{"Tabs Kept", "GO\t.2", "GO\t.2", nil},
		{"ANSI Stripped", "GO \x1b[31m.2", "GO [31m.2", nil},
		{"NUL and BEL Stripped", "LI\x00ST\a", "LIST", nil},
		{"Exact Limit", strings.Repeat("a", ali.DefaultMaxInputSize), strings.Repeat("a", ali.DefaultMaxInputSize), nil},
		{"Over Limit", strings.Repeat("a", ali.DefaultMaxInputSize+1), "", ali.ErrInputTooLarge},
		{"Invalid UTF-8", "GO \xff", "", ali.ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ali.SanitizeInput(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Limit From Environment", func(t *testing.T) {
		t.Setenv(ali.EnvMaxInputSize, "8")
		_, err := ali.SanitizeInput("CREATE PANE")
		assert.ErrorIs(t, err, ali.ErrInputTooLarge)

		t.Setenv(ali.EnvMaxInputSize, "not-a-number")
		_, err = ali.SanitizeInput("CREATE PANE")
		assert.NoError(t, err)
	})
}
