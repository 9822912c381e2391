// Package lexer tokenizes one line of client input into an operator
// keyword and its argument tokens, handling double-quoted spans with
// embedded spaces and reporting unterminated quotes rather than
// rejecting the line outright.
package lexer

import "strings"

// Keyword is the closed set of operator tokens the lexer recognizes.
// Arities are not its concern; internal/parser owns those.
type Keyword int

const (
	KeywordNone Keyword = iota
	KeywordPing
	KeywordQuit
	KeywordGet
	KeywordSet
	KeywordIncr
	KeywordDecr
	KeywordIncrBy
	KeywordDecrBy
	KeywordExists
	KeywordDel
	KeywordLPush
	KeywordRPush
	KeywordLPop
	KeywordRPop
	KeywordLLen
	KeywordLRange
	KeywordSAdd
	KeywordSRem
	KeywordSMembers
	KeywordSIsMember
	KeywordSCard
	KeywordHSet
	KeywordHGet
	KeywordHDel
	KeywordHExists
	KeywordHKeys
	KeywordHVals
	KeywordHLen
)

var keywords = map[string]Keyword{
	"PING":      KeywordPing,
	"QUIT":      KeywordQuit,
	"GET":       KeywordGet,
	"SET":       KeywordSet,
	"INCR":      KeywordIncr,
	"DECR":      KeywordDecr,
	"INCRBY":    KeywordIncrBy,
	"DECRBY":    KeywordDecrBy,
	"EXISTS":    KeywordExists,
	"DEL":       KeywordDel,
	"LPUSH":     KeywordLPush,
	"RPUSH":     KeywordRPush,
	"LPOP":      KeywordLPop,
	"RPOP":      KeywordRPop,
	"LLEN":      KeywordLLen,
	"LRANGE":    KeywordLRange,
	"SADD":      KeywordSAdd,
	"SREM":      KeywordSRem,
	"SMEMBERS":  KeywordSMembers,
	"SISMEMBER": KeywordSIsMember,
	"SCARD":     KeywordSCard,
	"HSET":      KeywordHSet,
	"HGET":      KeywordHGet,
	"HDEL":      KeywordHDel,
	"HEXISTS":   KeywordHExists,
	"HKEYS":     KeywordHKeys,
	"HVALS":     KeywordHVals,
	"HLEN":      KeywordHLen,
}

// ResultKind discriminates the three shapes tokenizing a line can take.
type ResultKind int

const (
	Empty ResultKind = iota
	Unrecognized
	Tokens
)

// Result is what tokenizing one line produces.
type Result struct {
	Kind ResultKind
	Op   Keyword
	Word string // set when Kind == Unrecognized: the offending first token, or "unterminated quoted string"
	Argv []string
}

// Tokenize lexes one line of input (its line terminator already
// stripped by the caller). A whitespace-only or empty line yields Empty.
// A line whose first token is not a known keyword yields Unrecognized,
// and so does a line with an unterminated double quote. Otherwise it yields Tokens with the matched operator and the remaining
// argument tokens, verbatim, including any double-quoted spans.
func Tokenize(line []byte) Result {
	toks, err := tokenize(string(line))
	if err != "" {
		return Result{Kind: Unrecognized, Word: err}
	}
	if len(toks) == 0 {
		return Result{Kind: Empty}
	}
	kw, ok := keywords[strings.ToUpper(toks[0])]
	if !ok {
		return Result{Kind: Unrecognized, Word: toks[0]}
	}
	return Result{Kind: Tokens, Op: kw, Argv: toks[1:]}
}

// tokenize splits s into whitespace-separated tokens, treating a
// double-quoted span (possibly containing spaces) as one token. It
// returns a non-empty error string if a quote is left unterminated.
func tokenize(s string) ([]string, string) {
	var toks []string
	i, n := 0, len(s)
	for i < n {
		for i < n && isSpace(s[i]) {
			i++
		}
		if i >= n {
			break
		}
		if s[i] == '"' {
			j := i + 1
			for j < n && s[j] != '"' {
				j++
			}
			if j >= n {
				return nil, "unterminated quoted string"
			}
			toks = append(toks, s[i+1:j])
			i = j + 1
			continue
		}
		j := i
		for j < n && !isSpace(s[j]) {
			j++
		}
		toks = append(toks, s[i:j])
		i = j
	}
	return toks, ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}
