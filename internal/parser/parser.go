// Package parser turns a lexer.Result into a validated message.Request.
// It never rejects input outright: a malformed command becomes
// message.Request{Op: message.OpInvalid}, carried all the way to the
// executor so the error response it produces is just another reply on
// the wire rather than a special connection-level failure.
package parser

import (
	"fmt"
	"strconv"

	"github.com/shoyo-dev/kiba/internal/lexer"
	"github.com/shoyo-dev/kiba/internal/message"
)

// rule is one arity-table entry: how many arguments a keyword accepts
// (inclusive bounds; max < 0 means unbounded), an optional validator for
// commands with a non-text argument position, and the Request
// constructor to run once an invocation passes both checks.
type rule struct {
	min, max  int // max < 0 is unbounded
	checkInts func(args []string) string // non-empty return is the Invalid message
	build     func(args []string) message.Request
}

var name = map[lexer.Keyword]string{
	lexer.KeywordPing:      "PING",
	lexer.KeywordQuit:      "QUIT",
	lexer.KeywordGet:       "GET",
	lexer.KeywordSet:       "SET",
	lexer.KeywordIncr:      "INCR",
	lexer.KeywordDecr:      "DECR",
	lexer.KeywordIncrBy:    "INCRBY",
	lexer.KeywordDecrBy:    "DECRBY",
	lexer.KeywordExists:    "EXISTS",
	lexer.KeywordDel:       "DEL",
	lexer.KeywordLPush:     "LPUSH",
	lexer.KeywordRPush:     "RPUSH",
	lexer.KeywordLPop:      "LPOP",
	lexer.KeywordRPop:      "RPOP",
	lexer.KeywordLLen:      "LLEN",
	lexer.KeywordLRange:    "LRANGE",
	lexer.KeywordSAdd:      "SADD",
	lexer.KeywordSRem:      "SREM",
	lexer.KeywordSMembers:  "SMEMBERS",
	lexer.KeywordSIsMember: "SISMEMBER",
	lexer.KeywordSCard:     "SCARD",
	lexer.KeywordHSet:      "HSET",
	lexer.KeywordHGet:      "HGET",
	lexer.KeywordHDel:      "HDEL",
	lexer.KeywordHExists:   "HEXISTS",
	lexer.KeywordHKeys:     "HKEYS",
	lexer.KeywordHVals:     "HVALS",
	lexer.KeywordHLen:      "HLEN",
}

func intAt(pos int, label string) func([]string) string {
	return func(args []string) string {
		if _, err := strconv.ParseInt(args[pos], 10, 64); err != nil {
			return fmt.Sprintf("%s is not an integer or out of range", label)
		}
		return ""
	}
}

var rules = map[lexer.Keyword]rule{
	lexer.KeywordPing: {0, 0, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpPing}
	}},
	lexer.KeywordQuit: {0, 0, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpQuit}
	}},
	lexer.KeywordGet: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpGet, Key: a[0]}
	}},
	lexer.KeywordSet: {2, 2, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpSet, Key: a[0], Val: a[1]}
	}},
	lexer.KeywordIncr: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpIncr, Key: a[0]}
	}},
	lexer.KeywordDecr: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpDecr, Key: a[0]}
	}},
	lexer.KeywordIncrBy: {2, 2, intAt(1, "value to increment by"), func(a []string) message.Request {
		d, _ := strconv.ParseInt(a[1], 10, 64)
		return message.Request{Op: message.OpIncrBy, Key: a[0], Delta: d}
	}},
	lexer.KeywordDecrBy: {2, 2, intAt(1, "value to decrement by"), func(a []string) message.Request {
		d, _ := strconv.ParseInt(a[1], 10, 64)
		return message.Request{Op: message.OpDecrBy, Key: a[0], Delta: d}
	}},
	lexer.KeywordExists: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpExists, Key: a[0]}
	}},
	lexer.KeywordDel: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpDel, Key: a[0]}
	}},
	lexer.KeywordLPush: {2, -1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpLPush, Key: a[0], Vals: a[1:]}
	}},
	lexer.KeywordRPush: {2, -1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpRPush, Key: a[0], Vals: a[1:]}
	}},
	lexer.KeywordLPop: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpLPop, Key: a[0]}
	}},
	lexer.KeywordRPop: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpRPop, Key: a[0]}
	}},
	lexer.KeywordLLen: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpLLen, Key: a[0]}
	}},
	lexer.KeywordLRange: {3, 3, func(a []string) string {
		if msg := intAt(1, "start index")(a); msg != "" {
			return msg
		}
		return intAt(2, "stop index")(a)
	}, func(a []string) message.Request {
		start, _ := strconv.ParseInt(a[1], 10, 64)
		stop, _ := strconv.ParseInt(a[2], 10, 64)
		return message.Request{Op: message.OpLRange, Key: a[0], Start: start, Stop: stop}
	}},
	lexer.KeywordSAdd: {2, -1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpSAdd, Key: a[0], Vals: a[1:]}
	}},
	lexer.KeywordSRem: {2, -1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpSRem, Key: a[0], Vals: a[1:]}
	}},
	lexer.KeywordSMembers: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpSMembers, Key: a[0]}
	}},
	lexer.KeywordSIsMember: {2, 2, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpSIsMember, Key: a[0], Val: a[1]}
	}},
	lexer.KeywordSCard: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpSCard, Key: a[0]}
	}},
	lexer.KeywordHSet: {3, 3, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHSet, Key: a[0], Field: a[1], Val: a[2]}
	}},
	lexer.KeywordHGet: {2, 2, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHGet, Key: a[0], Field: a[1]}
	}},
	lexer.KeywordHDel: {2, -1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHDel, Key: a[0], Vals: a[1:]}
	}},
	lexer.KeywordHExists: {2, 2, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHExists, Key: a[0], Field: a[1]}
	}},
	lexer.KeywordHKeys: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHKeys, Key: a[0]}
	}},
	lexer.KeywordHVals: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHVals, Key: a[0]}
	}},
	lexer.KeywordHLen: {1, 1, nil, func(a []string) message.Request {
		return message.Request{Op: message.OpHLen, Key: a[0]}
	}},
}

func invalidArgc(cmd string, want string, got int) message.Request {
	return message.Request{
		Op:     message.OpInvalid,
		ErrMsg: fmt.Sprintf("wrong number of arguments for '%s', expected %s, got %d", cmd, want, got),
	}
}

// Parse validates a lexer.Result against this command's arity table and
// builds the typed Request. It never panics and never returns an error;
// every rejection path becomes message.OpInvalid.
func Parse(lr lexer.Result) message.Request {
	switch lr.Kind {
	case lexer.Empty:
		return message.Request{Op: message.OpNoOp}
	case lexer.Unrecognized:
		if lr.Word == "unterminated quoted string" {
			return message.Request{Op: message.OpInvalid, ErrMsg: "syntax error: unterminated quoted string"}
		}
		return message.Request{Op: message.OpInvalid, ErrMsg: fmt.Sprintf("unknown command '%s'", lr.Word)}
	}

	r := rules[lr.Op]
	cmd := name[lr.Op]
	argc := len(lr.Argv)

	if argc < r.min || (r.max >= 0 && argc > r.max) {
		want := fmt.Sprintf("%d", r.min)
		if r.max < 0 {
			want = fmt.Sprintf("at least %d", r.min)
		} else if r.max != r.min {
			want = fmt.Sprintf("between %d and %d", r.min, r.max)
		}
		return invalidArgc(cmd, want, argc)
	}

	if r.checkInts != nil {
		if msg := r.checkInts(lr.Argv); msg != "" {
			return message.Request{Op: message.OpInvalid, ErrMsg: fmt.Sprintf("invalid argument for '%s': %s", cmd, msg)}
		}
	}

	return r.build(lr.Argv)
}
