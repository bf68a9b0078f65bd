package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Advance(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		want    OrderStatus
		wantErr bool
	}{
		{OrderPending, OrderConfirmed, false},
		{OrderConfirmed, OrderProcessing, false},
		{OrderProcessing, OrderShipped, false},
		{OrderShipped, OrderDelivered, false},
		{OrderDelivered, OrderDelivered, true},
		{OrderCancelled, OrderCancelled, true},
		{OrderStatus("refunded"), OrderStatus("refunded"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			got, err := tt.from.Advance()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTransitionNotAllowed)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderStatus_Cancel(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderProcessing, OrderShipped} {
		got, err := s.Cancel()
		require.NoError(t, err, "cancel from %s", s)
		assert.Equal(t, OrderCancelled, got)

		// cancelled is absorbing
		_, err = got.Advance()
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
		_, err = got.Cancel()
		assert.ErrorIs(t, err, ErrTransitionNotAllowed)
	}

	_, err := OrderDelivered.Cancel()
	assert.ErrorIs(t, err, ErrTransitionNotAllowed)
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderDelivered.IsTerminal())
	assert.True(t, OrderCancelled.IsTerminal())
	assert.False(t, OrderShipped.IsTerminal())
	assert.False(t, OrderDelivered.CanAdvance())
	assert.False(t, OrderDelivered.CanCancel())
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderShipped, s)

	s, err = ParseOrderStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, OrderCancelled, s)

	_, err = ParseOrderStatus("lost")
	assert.Error(t, err)
}

func TestOrder_Steps(t *testing.T) {
	order := Order{Status: OrderProcessing}
	steps := order.Steps()
	require.Len(t, steps, 5)

	assert.True(t, steps[0].Done)
	assert.True(t, steps[2].Done)
	assert.True(t, steps[2].Current)
	assert.False(t, steps[3].Done)
	assert.Equal(t, 50, order.ProgressPercent())

	cancelled := Order{Status: OrderCancelled}
	for _, s := range cancelled.Steps() {
		assert.False(t, s.Done)
		assert.False(t, s.Current)
	}
	assert.Equal(t, 0, cancelled.ProgressPercent())
	assert.Equal(t, 100, Order{Status: OrderDelivered}.ProgressPercent())
}

func TestImportBatch_CloneAndValidCount(t *testing.T) {
	batch := &ImportBatch{Rows: []ValidationResult{
		{RowNumber: 2, IsValid: true, Status: ImportPending},
		{RowNumber: 3, IsValid: false, Errors: []string{"Name is required"}, Status: ImportPending},
	}}
	assert.Equal(t, 1, batch.ValidCount())

	cp := batch.Clone()
	cp.Rows[0].Status = ImportSuccess
	cp.Rows[1].Errors[0] = "changed"

	assert.Equal(t, ImportPending, batch.Rows[0].Status)
	assert.Equal(t, "Name is required", batch.Rows[1].Errors[0])
}
