package shared

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyAdd(t *testing.T) {
	sum, err := CNY(1000).Add(CNY(500))
	require.NoError(t, err)
	assert.Equal(t, int64(1500), sum.Amount())
	assert.Equal(t, DefaultCurrency, sum.Currency())

	_, err = CNY(100).Add(*NewMoney(100, "USD"))
	assert.Error(t, err, "mixed currencies must not add")
}

func TestMoneyMultiply(t *testing.T) {
	product, err := CNY(1000).Multiply(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), product.Amount())

	_, err = CNY(math.MaxInt64).Multiply(2)
	assert.Error(t, err, "overflow must be detected")
}

func TestMoneyComparisons(t *testing.T) {
	assert.True(t, CNY(1).IsPositive())
	assert.False(t, CNY(0).IsPositive())
	assert.True(t, CNY(250).Equals(CNY(250)))
	assert.False(t, CNY(250).Equals(*NewMoney(250, "USD")))
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "2500 CNY", CNY(2500).String())
}
