package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(r Response) string {
	var b strings.Builder
	_, _ = r.WriteTo(&b)
	return b.String()
}

func TestRenderOkNilInteger(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("OK\n", render(Ok()))
	assert.Equal("(nil)\n", render(Nil()))
	assert.Equal("(integer) 7000\n", render(Integer(7000)))
	assert.Equal("(integer) -1\n", render(Integer(-1)))
}

func TestRenderBulk(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("\"FOO BAR\"\n", render(Bulk("FOO BAR")))
}

func TestRenderArray(t *testing.T) {
	assert := assert.New(t)
	got := render(Array([]string{"red", "blue", "green"}))
	assert.Equal("1) red\n2) blue\n3) green\n", got)
}

func TestRenderEmptyArray(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("(empty list or set)\n", render(Array(nil)))
	assert.Equal("(empty list or set)\n", render(Array([]string{})))
}

func TestRenderError(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("(error) wrong type\n", render(Error("wrong type")))
}
