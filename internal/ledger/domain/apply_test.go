package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyTxType(t *testing.T) {
	tests := []struct {
		name     string
		txType   TxType
		quantity string
		current  string
		want     string
		wantErr  error
	}{
		{name: "entry adds", txType: TxTypeEntry, quantity: "50", current: "0", want: "50"},
		{name: "entry adds fractional", txType: TxTypeEntry, quantity: "2.505", current: "10", want: "12.505"},
		{name: "usage subtracts", txType: TxTypeUsage, quantity: "20", current: "50", want: "30"},
		{name: "usage drains to zero", txType: TxTypeUsage, quantity: "30", current: "30", want: "0"},
		{name: "usage over stock", txType: TxTypeUsage, quantity: "999", current: "30", wantErr: ErrInsufficientStock},
		{name: "adjustment sets absolute", txType: TxTypeAdjustment, quantity: "12", current: "30", want: "12"},
		{name: "adjustment up", txType: TxTypeAdjustment, quantity: "100", current: "30", want: "100"},
		{name: "adjustment to zero", txType: TxTypeAdjustment, quantity: "0", current: "30", want: "0"},
		{name: "adjustment negative", txType: TxTypeAdjustment, quantity: "-5", current: "30", wantErr: ErrNegativeStock},
		{name: "entry zero quantity", txType: TxTypeEntry, quantity: "0", current: "30", wantErr: ErrInvalidQuantity},
		{name: "usage zero quantity", txType: TxTypeUsage, quantity: "0", current: "30", wantErr: ErrInvalidQuantity},
		{name: "unknown type", txType: TxType("TRANSFER"), quantity: "5", current: "30", wantErr: ErrInvalidTransactionType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyTxType(tt.txType, dec(tt.quantity), dec(tt.current))
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestApplyTxTypeInsufficientStockDetail(t *testing.T) {
	_, err := ApplyTxType(TxTypeUsage, dec("999"), dec("30"))
	require.Error(t, err)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Current.Equal(dec("30")))
	assert.True(t, insufficient.Requested.Equal(dec("999")))
	assert.True(t, errors.Is(err, ErrInsufficientStock))
}

func TestNormalizeQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2345", "1.234"},
		{"1.2", "1.2"},
		{"10", "10"},
		{"0.0009", "0"},
	}
	for _, tt := range tests {
		got := NormalizeQuantity(dec(tt.in))
		assert.True(t, got.Equal(dec(tt.want)), "normalize %s: got %s want %s", tt.in, got, tt.want)
	}
}

func TestParseTxType(t *testing.T) {
	tests := []struct {
		in   string
		want TxType
		ok   bool
	}{
		{"ENTRY", TxTypeEntry, true},
		{"USAGE", TxTypeUsage, true},
		{"ADJUSTMENT", TxTypeAdjustment, true},
		{" ENTRY ", TxTypeEntry, true},
		{"entry", "", false},
		{"Entry", "", false},
		{"", "", false},
		{"TRANSFER", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTxType(tt.in)
		assert.Equal(t, tt.ok, ok, "parse %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "parse %q", tt.in)
		}
	}
}
