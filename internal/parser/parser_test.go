package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shoyo-dev/kiba/internal/lexer"
	"github.com/shoyo-dev/kiba/internal/message"
)

func TestParseNoOpOnEmptyLine(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("")))
	assert.Equal(message.OpNoOp, req.Op)
}

func TestParseInvalidOnUnknownCommand(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("BOGUS a")))
	assert.Equal(message.OpInvalid, req.Op)
	assert.Contains(req.ErrMsg, "unknown command")
}

func TestParseArityTooFew(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("SET onlykey")))
	assert.Equal(message.OpInvalid, req.Op)
	assert.Contains(req.ErrMsg, "SET")
}

func TestParseArityVariadicAcceptsMany(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("LPUSH k a b c d")))
	assert.Equal(message.OpLPush, req.Op)
	assert.Equal("k", req.Key)
	assert.Equal([]string{"a", "b", "c", "d"}, req.Vals)
}

func TestParseIncrByRejectsNonInteger(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("INCRBY k notanumber")))
	assert.Equal(message.OpInvalid, req.Op)
	assert.Contains(req.ErrMsg, "integer")
}

func TestParseIncrByBuildsDelta(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("INCRBY k -5")))
	assert.Equal(message.OpIncrBy, req.Op)
	assert.Equal("k", req.Key)
	assert.EqualValues(-5, req.Delta)
}

func TestParseLRangeBuildsStartStop(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("LRANGE k -2 -1")))
	assert.Equal(message.OpLRange, req.Op)
	assert.EqualValues(-2, req.Start)
	assert.EqualValues(-1, req.Stop)
}

func TestParseLRangeRejectsNonIntegerBounds(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte("LRANGE k 0 nope")))
	assert.Equal(message.OpInvalid, req.Op)
	assert.Contains(req.ErrMsg, "stop index")
}

func TestParseHSetBuildsFieldVal(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte(`HSET user:321 name "John Smith"`)))
	assert.Equal(message.OpHSet, req.Op)
	assert.Equal("user:321", req.Key)
	assert.Equal("name", req.Field)
	assert.Equal("John Smith", req.Val)
}

func TestParseUnterminatedQuotePropagatesAsInvalid(t *testing.T) {
	assert := assert.New(t)
	req := Parse(lexer.Tokenize([]byte(`SET k "oops`)))
	assert.Equal(message.OpInvalid, req.Op)
	assert.Contains(req.ErrMsg, "unterminated quoted string")
}

func TestParseZeroArityCommands(t *testing.T) {
	assert := assert.New(t)

	req := Parse(lexer.Tokenize([]byte("PING")))
	assert.Equal(message.OpPing, req.Op)

	req = Parse(lexer.Tokenize([]byte("QUIT")))
	assert.Equal(message.OpQuit, req.Op)

	req = Parse(lexer.Tokenize([]byte("PING extra")))
	assert.Equal(message.OpInvalid, req.Op)
}
