package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("sentinel")
	err := Wrapf(sentinel, "while doing %q", "work")

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, `while doing "work": sentinel`, err.Error())
}

func TestMark(t *testing.T) {
	sentinel := New("sentinel")
	err := Mark(Errorf("unrelated failure %d", 42), sentinel)

	assert.True(t, Is(err, sentinel))
	assert.Equal(t, "unrelated failure 42", err.Error())
}
