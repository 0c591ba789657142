package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_EmptyArena(t *testing.T) {
	a, _ := newTestArena(t, 1024)
	assert.Equal(t, Stats{}, a.Stats())
}

func TestStats_AccountsEveryChunk(t *testing.T) {
	a, _ := newTestArena(t, 1024)

	for n := 0; n < 48; n++ { // fills a 1 KiB and a 2 KiB chunk exactly
		a.AllocBytes(64)
	}
	s := a.Stats()
	assert.Equal(t, 2, s.Chunks)
	assert.Equal(t, 2, s.GrowthEvents)
	assert.Equal(t, uint64(1024+2048), s.Capacity)
	assert.Equal(t, uint64(48*64), s.Used)
	assert.Equal(t, s.Capacity, s.Used+s.Free, "used + free must equal capacity")
}

func TestStats_AfterClose(t *testing.T) {
	a, _ := newTestArena(t, 1024)
	a.AllocBytes(512)
	require.NoError(t, a.Close())

	s := a.Stats()
	assert.Zero(t, s.Chunks)
	assert.Zero(t, s.Capacity)
	assert.Equal(t, 1, s.GrowthEvents, "growth history survives teardown")
}
