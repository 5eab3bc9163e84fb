package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmonteiro/pindureta/cmd/tui/internal/view"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "CommaDecimal", input: "12,50", want: 1250},
		{name: "DotDecimal", input: "12.50", want: 1250},
		{name: "WholeNumber", input: "12", want: 1200},
		{name: "Padded", input: " 7,05 ", want: 705},
		{name: "SubCentRounds", input: "0.005", want: 1},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := view.ParseAmount(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R$ 12.50", view.FormatAmount(1250))
	assert.Equal(t, "R$ -0.50", view.FormatAmount(-50))
	assert.Equal(t, "R$ 0.00", view.FormatAmount(0))
}
