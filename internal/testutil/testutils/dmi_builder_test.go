package helpers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatin1(t *testing.T) {
	assert.Equal(t, []byte("caf\xe9"), latin1(t, "café"))
	assert.Equal(t, []byte("state = \"a\"\n"), latin1(t, "state = \"a\"\n"))
}

func TestDMIBuilder_TEXTIsLatin1(t *testing.T) {
	data := NewDMIBuilder(t).WithTEXT("Comment", "naïve").Bytes()

	assert.True(t, bytes.Contains(data, []byte("Comment\x00na\xefve")))
	assert.False(t, bytes.Contains(data, []byte("naïve")), "payload must not be UTF-8")
}
