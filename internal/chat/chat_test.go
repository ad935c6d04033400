package chat_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storebot/internal/chat"
)

func TestActionArgs(t *testing.T) {
	data := chat.Action("admin_order_status", 12, 3)
	assert.Equal(t, "admin_order_status_12_3", data)

	args, err := chat.Args(data, "admin_order_status")
	require.NoError(t, err)
	assert.Equal(t, []int{12, 3}, args)

	assert.Equal(t, 12, chat.Arg(data, "admin_order_status", 0, -1))
	assert.Equal(t, -1, chat.Arg(data, "admin_order_status", 5, -1))

	_, err = chat.Args("product_x", "product")
	assert.Error(t, err)

	args, err = chat.Args("cart", "cart")
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestGrid(t *testing.T) {
	buttons := lo.Map(lo.Range(12), func(i, _ int) chat.Button {
		return chat.Btn("ID", chat.Action("product", i))
	})
	rows := chat.Grid(buttons)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], 5)
	assert.Len(t, rows[2], 2)
}
