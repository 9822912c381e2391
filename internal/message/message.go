// Package message defines the shapes that cross the Lexer -> Parser ->
// Executor -> Connection Handler pipeline: a Request produced by the
// parser and a Response produced by the executor.
package message

import (
	"fmt"
	"io"
	"strconv"
)

// Op names the command a Request carries. NoOp and Invalid are not real
// store commands; they let the parser hand malformed or empty input all
// the way to the executor without ever rejecting it itself.
type Op int

const (
	OpNoOp Op = iota
	OpInvalid
	OpPing
	OpQuit
	OpGet
	OpSet
	OpIncr
	OpDecr
	OpIncrBy
	OpDecrBy
	OpExists
	OpDel
	OpLPush
	OpRPush
	OpLPop
	OpRPop
	OpLLen
	OpLRange
	OpSAdd
	OpSRem
	OpSMembers
	OpSIsMember
	OpSCard
	OpHSet
	OpHGet
	OpHDel
	OpHExists
	OpHKeys
	OpHVals
	OpHLen
)

// Request is the typed, validated representation of one client command.
// Not every field is meaningful for every Op; which ones are is spelled
// out per-Op in internal/parser's arity table.
type Request struct {
	Op Op

	Key   string
	Val   string
	Vals  []string
	Field string
	Delta int64
	Start int64
	Stop  int64

	// ErrMsg is set only when Op == OpInvalid.
	ErrMsg string
}

// RespKind discriminates the shape of a Response's payload.
type RespKind int

const (
	RespOk RespKind = iota
	RespNil
	RespInteger
	RespBulk
	RespArray
	RespEmptyArray
	RespError
)

// Response is the typed reply the executor produces for a Request. It is
// rendered to wire bytes by WriteTo, kept deliberately separate from the
// rest of the executor so tests can assert on structure instead of text.
type Response struct {
	Kind RespKind
	Int  int64
	Str  string
	Arr  []string
	Err  string
}

func Ok() Response                 { return Response{Kind: RespOk} }
func Nil() Response                { return Response{Kind: RespNil} }
func Integer(n int64) Response     { return Response{Kind: RespInteger, Int: n} }
func Bulk(s string) Response       { return Response{Kind: RespBulk, Str: s} }
func Array(xs []string) Response {
	if len(xs) == 0 {
		return Response{Kind: RespEmptyArray}
	}
	return Response{Kind: RespArray, Arr: xs}
}
func Error(msg string) Response { return Response{Kind: RespError, Err: msg} }

// WriteTo renders a Response using Kiba's textual reply grammar (spec
// section 6): OK, (nil), (integer) N, "bulk text", N) elem per line, or
// (empty list or set) for an explicitly empty array, and (error) msg.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	var s string
	switch r.Kind {
	case RespOk:
		s = "OK\n"
	case RespNil:
		s = "(nil)\n"
	case RespInteger:
		s = "(integer) " + strconv.FormatInt(r.Int, 10) + "\n"
	case RespBulk:
		s = "\"" + r.Str + "\"\n"
	case RespEmptyArray:
		s = "(empty list or set)\n"
	case RespArray:
		var b []byte
		for i, elem := range r.Arr {
			b = append(b, []byte(fmt.Sprintf("%d) %s\n", i+1, elem))...)
		}
		s = string(b)
	case RespError:
		s = "(error) " + r.Err + "\n"
	default:
		s = "(error) internal: unknown response kind\n"
	}
	n, err := io.WriteString(w, s)
	return int64(n), err
}
