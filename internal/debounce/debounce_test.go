package debounce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateCoalescesBurst(t *testing.T) {
	var s State
	var tags []Tag
	for _, raw := range []string{"b", "ba", "bat"} {
		var tag Tag
		s, tag = s.Type(raw)
		tags = append(tags, tag)
	}

	for _, stale := range tags[:len(tags)-1] {
		var ok bool
		s, ok = s.Fire(stale)
		assert.False(t, ok, "stale tag %d must not commit", stale)
		assert.Equal(t, "", s.Committed)
	}

	s, ok := s.Fire(tags[len(tags)-1])
	require.True(t, ok)
	assert.Equal(t, "bat", s.Committed)
	assert.False(t, s.Pending())
}

func TestStateCommitsEmptyString(t *testing.T) {
	var s State
	s, tag := s.Type("x")
	s, _ = s.Fire(tag)
	require.Equal(t, "x", s.Committed)

	s, tag = s.Type("")
	assert.True(t, s.Pending())
	s, ok := s.Fire(tag)
	require.True(t, ok)
	assert.Equal(t, "", s.Committed)
}

func TestStateCommittedIsPastRaw(t *testing.T) {
	var s State
	s, first := s.Type("dune")
	s, _ = s.Type("dune 2")

	s, ok := s.Fire(first)
	assert.False(t, ok)
	assert.Equal(t, "", s.Committed, "committed must never jump to a value newer than the last commit")
	assert.Equal(t, "dune 2", s.Raw)
}

func TestDebouncerEmitsLastOfBurst(t *testing.T) {
	d := New(30 * time.Millisecond)
	defer d.Close()

	for _, raw := range []string{"m", "ma", "mat", "matrix"} {
		d.Push(raw)
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-d.Committed():
		assert.Equal(t, "matrix", got)
	case <-time.After(time.Second):
		t.Fatal("no commit within 1s")
	}

	select {
	case extra := <-d.Committed():
		t.Fatalf("unexpected second commit %q", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	d := New(20 * time.Millisecond)
	defer d.Close()

	d.Push("alien")
	assert.Equal(t, "alien", <-d.Committed())

	d.Push("aliens")
	assert.Equal(t, "aliens", <-d.Committed())
	assert.Equal(t, "aliens", d.Raw())
}

func TestDebouncerClose(t *testing.T) {
	d := New(time.Second)
	d.Push("heat")
	d.Close()
	d.Push("ignored")

	_, open := <-d.Committed()
	assert.False(t, open)
}
