package feed

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice_CurrencySuffix(t *testing.T) {
	d, err := ParsePrice("100 DH")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(d))
}

func TestParsePrice_CommaSeparator(t *testing.T) {
	d, err := ParsePrice("99,90DH")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99.90").Equal(d))
}

func TestParsePrice_PlainNumber(t *testing.T) {
	d, err := ParsePrice(" 45.5 ")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("45.5").Equal(d))
}

func TestParsePrice_NonNumeric(t *testing.T) {
	_, err := ParsePrice("sur commande")
	assert.Error(t, err)
}

func TestParsePrice_Empty(t *testing.T) {
	_, err := ParsePrice("")
	assert.Error(t, err)
}

func TestParseStock_Bounded(t *testing.T) {
	s := ParseStock("12")
	require.NotNil(t, s)
	assert.Equal(t, 12, *s)
}

func TestParseStock_Unparseable(t *testing.T) {
	assert.Nil(t, ParseStock("plenty"))
	assert.Nil(t, ParseStock(""))
	assert.Nil(t, ParseStock("-3"))
}

func TestParseDiscount(t *testing.T) {
	d := ParseDiscount("20")
	require.NotNil(t, d)
	assert.Equal(t, 20, *d)

	d = ParseDiscount("35%")
	require.NotNil(t, d)
	assert.Equal(t, 35, *d)

	assert.Nil(t, ParseDiscount(""))
	assert.Nil(t, ParseDiscount("0"))
	assert.Nil(t, ParseDiscount("150"))
	assert.Nil(t, ParseDiscount("soon"))
}
