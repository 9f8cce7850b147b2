package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmshaban/jard-backend/internal/config"
	"github.com/hmshaban/jard-backend/internal/domain"
	"github.com/hmshaban/jard-backend/internal/engine"
	"github.com/hmshaban/jard-backend/internal/normalize"
	"github.com/hmshaban/jard-backend/internal/report"
)

func testInput() engine.Input {
	return engine.Input{
		Purchases: normalize.RawSheet{Name: "purchases", Rows: []normalize.RawRow{
			{
				domain.FieldMaterialCode:  "A",
				domain.FieldMaterialName:  "item A",
				domain.FieldQuantity:      "10",
				domain.FieldUnitPrice:     "100",
				domain.FieldOperationDate: "2025-01-01",
				domain.FieldSupplier:      "acme",
				domain.FieldOperationType: "شراء",
			},
		}},
		Physical: normalize.RawSheet{Name: "physicalInventory", Rows: []normalize.RawRow{
			{
				domain.FieldMaterialCode: "A",
				domain.FieldMaterialName: "item A",
				domain.FieldQuantity:     "6",
				domain.FieldUnitPrice:    "100",
			},
		}},
	}
}

func waitTerminal(t *testing.T, m *RunManager, id string) RunState {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		state, err := m.State(id)
		require.NoError(t, err)
		switch state.Status {
		case domain.RunCompleted, domain.RunFailed, domain.RunCancelled:
			return state
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("run never reached a terminal state")
	return RunState{}
}

func TestStartRunCompletesAndServesReports(t *testing.T) {
	m := NewRunManager(config.Load(), nil, nil)

	id, err := m.StartRun(context.Background(), testInput(), "jard.xlsx")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	state := waitTerminal(t, m, id)
	assert.Equal(t, domain.RunCompleted, state.Status)
	assert.Equal(t, "jard.xlsx", state.SourceFile)
	assert.NotNil(t, state.CompletedAt)
	assert.Equal(t, float64(100), state.Percent)

	result, err := m.Result(id)
	require.NoError(t, err)
	assert.NotEmpty(t, result.NetPurchases)

	table, err := m.ReportTable(context.Background(), id, report.NameEnding)
	require.NoError(t, err)
	assert.Equal(t, report.NameEnding, table.Name)
	assert.NotEmpty(t, table.Rows)

	var buf bytes.Buffer
	require.NoError(t, m.Export(id, &buf))
	assert.NotZero(t, buf.Len())
}

func TestResultBeforeCompletionFails(t *testing.T) {
	m := NewRunManager(config.Load(), nil, nil)

	_, err := m.Result("does-not-exist")
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = m.ReportTable(context.Background(), "does-not-exist", "nope")
	assert.ErrorIs(t, err, ErrUnknownReport)
}

func TestCancelRun(t *testing.T) {
	m := NewRunManager(config.Load(), nil, nil)

	input := testInput()
	for i := 0; i < 5000; i++ {
		input.Purchases.Rows = append(input.Purchases.Rows, normalize.RawRow{
			domain.FieldMaterialCode:  "B",
			domain.FieldMaterialName:  "item B",
			domain.FieldQuantity:      "1",
			domain.FieldUnitPrice:     "10",
			domain.FieldOperationType: "شراء",
		})
	}

	id, err := m.StartRun(context.Background(), input, "big.xlsx")
	require.NoError(t, err)
	require.NoError(t, m.Cancel(id))

	state := waitTerminal(t, m, id)
	assert.Equal(t, domain.RunCancelled, state.Status)

	_, err = m.Result(id)
	assert.ErrorIs(t, err, ErrRunNotFinished)

	assert.ErrorIs(t, m.Cancel("missing"), ErrRunNotFound)
}

func TestStatesNewestFirst(t *testing.T) {
	m := NewRunManager(config.Load(), nil, nil)

	first, err := m.StartRun(context.Background(), testInput(), "a.xlsx")
	require.NoError(t, err)
	waitTerminal(t, m, first)

	second, err := m.StartRun(context.Background(), testInput(), "b.xlsx")
	require.NoError(t, err)
	waitTerminal(t, m, second)

	states := m.States()
	require.Len(t, states, 2)
	assert.False(t, states[1].StartedAt.After(states[0].StartedAt))
}