package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pos_manager/model"
)

func cartLines() []model.CartLine {
	return []model.CartLine{
		{LineID: "line-1", ItemName: "Latte", Quantity: 2},
		{LineID: "line-2", ItemName: "Croissant", Quantity: 1},
		{LineID: "line-3", ItemName: "Americano", Quantity: 3},
	}
}

func TestApplyLineQuantityUpdates(t *testing.T) {
	lines, found := applyLineQuantity(cartLines(), "line-2", 4)

	assert.True(t, found)
	assert.Len(t, lines, 3)
	assert.Equal(t, 4, lines[1].Quantity)
	assert.Equal(t, "Croissant", lines[1].ItemName)
}

func TestApplyLineQuantityZeroRemovesLine(t *testing.T) {
	lines, found := applyLineQuantity(cartLines(), "line-2", 0)

	assert.True(t, found)
	assert.Len(t, lines, 2)
	assert.Equal(t, "line-1", lines[0].LineID)
	assert.Equal(t, "line-3", lines[1].LineID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 3, lines[1].Quantity)
}

func TestApplyLineQuantityNegativeRemovesLine(t *testing.T) {
	lines, found := applyLineQuantity(cartLines(), "line-1", -2)

	assert.True(t, found)
	assert.Len(t, lines, 2)
	assert.Equal(t, "line-2", lines[0].LineID)
}

func TestApplyLineQuantityUnknownLine(t *testing.T) {
	lines, found := applyLineQuantity(cartLines(), "line-9", 2)

	assert.False(t, found)
	assert.Len(t, lines, 3)
}
