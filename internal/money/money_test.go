package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLoose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain integer", input: "1000", want: "1000"},
		{name: "decimated annotation", input: "約 500", want: "500"},
		{name: "range keeps all digits", input: "250-700", want: "250700"},
		{name: "currency suffix", input: "1,500 TWD", want: "1500"},
		{name: "decimal", input: "32.5", want: "32.5"},
		{name: "second decimal point ignored", input: "1.2.3", want: "1.2"},
		{name: "no digits", input: "abc", want: "0"},
		{name: "empty", input: "", want: "0"},
		{name: "trailing point", input: "500.", want: "500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLoose(tt.input).String())
		})
	}
}

func TestFinalTotal(t *testing.T) {
	tests := []struct {
		name string
		twd  string
		thb  string
		rate string
		want string
	}{
		{name: "basic", twd: "1000", thb: "500", rate: "1.1", want: "約 1,550 TWD"},
		{name: "missing rate yields empty", twd: "1000", thb: "500", rate: "", want: ""},
		{name: "zero rate yields empty", twd: "1000", thb: "500", rate: "0", want: ""},
		{name: "unparsable twd treated as zero", twd: "abc", thb: "500", rate: "2", want: "約 1,000 TWD"},
		{name: "both empty", twd: "", thb: "", rate: "1", want: "約 0 TWD"},
		{name: "rounds to nearest integer", twd: "0", thb: "333", rate: "0.91", want: "約 303 TWD"},
		{name: "annotated inputs", twd: "約 1000", thb: "500元", rate: "1.1", want: "約 1,550 TWD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalTotal(tt.twd, tt.thb, tt.rate))
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "0", want: "0"},
		{input: "999", want: "999"},
		{input: "1000", want: "1,000"},
		{input: "1234567", want: "1,234,567"},
		{input: "1234.56", want: "1,234.56"},
		{input: "-45000", want: "-45,000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupThousands(tt.input))
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "strips annotation and regroups", input: "約12000", want: "12,000"},
		{name: "plain passthrough with separators", input: "4500", want: "4,500"},
		{name: "no digits passes through", input: "free", want: "free"},
		{name: "zero", input: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDisplay(tt.input))
		})
	}
}
