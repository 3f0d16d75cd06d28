package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solfmt/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("solfmt", files, nil).(*progressModel)
}

func TestApplyEventCounts(t *testing.T) {
	m := newModel("a.sol", "b.sol", "c.sol")
	m.applyEvent(driver.Event{File: "a.sol", Stage: driver.StageFormat, Status: driver.StatusWorking})
	assert.Equal(t, "formatting", m.items[0].status)

	m.applyEvent(driver.Event{File: "a.sol", Stage: driver.StageWrite, Status: driver.StatusDone, Changed: true})
	m.applyEvent(driver.Event{File: "b.sol", Stage: driver.StageFormat, Status: driver.StatusDone, Cached: true})
	m.applyEvent(driver.Event{File: "c.sol", Stage: driver.StageFormat, Status: driver.StatusError, Err: errors.New("x")})
	m.applyEvent(driver.Event{File: "c.sol", Stage: driver.StageFormat, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "unknown.sol", Status: driver.StatusDone})

	assert.Equal(t, counts{finished: 3, changed: 1, cached: 1, failed: 1}, m.counts)
	assert.Equal(t, "changed", m.items[0].status)
	assert.Equal(t, "cached", m.items[1].status)
	assert.Equal(t, "error", m.items[2].status, "final items ignore later events")

	view := m.View()
	assert.Contains(t, view, "solfmt 3/3")
	assert.Contains(t, view, "changed 1  cached 1  failed 1")
}

func TestRecentRowsAreCapped(t *testing.T) {
	files := make([]string, maxRows+5)
	for i := range files {
		files[i] = fmt.Sprintf("f%02d.sol", i)
	}
	m := newModel(files...)
	for _, f := range files {
		m.applyEvent(driver.Event{File: f, Stage: driver.StageRead, Status: driver.StatusWorking})
	}
	require.Len(t, m.recent, maxRows)
	assert.Equal(t, len(files)-1, m.recent[len(m.recent)-1])
	assert.NotContains(t, m.View(), "f00.sol")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "contrac...", truncate("contracts/Token.sol", 10))
	assert.Equal(t, "co", truncate("contracts", 2))
	assert.True(t, strings.HasSuffix(truncate("契約/トークン.sol", 9), "..."))
}

func TestEmptyModelRendersNothing(t *testing.T) {
	assert.Empty(t, newModel().View())
}

func TestCompletedAfterEventStreamCloses(t *testing.T) {
	m := newModel("a.sol")
	assert.False(t, Completed(m))
	_, cmd := m.Update(doneMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, Completed(m))
}
