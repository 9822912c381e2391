// Package executor runs Kiba's single-writer actor: the one goroutine
// that owns internal/store exclusively and the only place a Request
// becomes store mutation. Every other goroutine in the process only
// ever touches the store by sending on the channel this package
// listens on.
package executor

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/shoyo-dev/kiba/internal/message"
	"github.com/shoyo-dev/kiba/internal/store"
)

// Envelope pairs a Request with the private reply channel its sender
// will block on. internal/server allocates one reply channel per
// command and never reuses it.
type Envelope struct {
	Req   message.Request
	Reply chan message.Response
}

// Executor owns a Store and serves Envelopes received on In until
// In is closed.
type Executor struct {
	In    chan Envelope
	store *store.Store
	log   *zap.Logger
}

// New creates an Executor around store s. bound is the dispatcher
// channel's capacity (the config file's cbound key).
func New(s *store.Store, bound int, log *zap.Logger) *Executor {
	return &Executor{
		In:    make(chan Envelope, bound),
		store: s,
		log:   log,
	}
}

// Run pins the calling goroutine to its OS thread and serves requests
// until In is closed. Callers should invoke Run in its own goroutine:
//
//	go executor.Run()
//
// LockOSThread gives the Store a concrete, exclusive OS-level home: no
// other goroutine in the process ever runs on this thread, so the Store
// needs no locking of its own.
func (e *Executor) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for env := range e.In {
		resp := e.dispatch(env.Req)
		env.Reply <- resp
	}
}

func (e *Executor) dispatch(req message.Request) message.Response {
	switch req.Op {
	case message.OpNoOp:
		return message.Ok()
	case message.OpInvalid:
		return message.Error(req.ErrMsg)
	case message.OpPing:
		return message.Bulk("PONG")
	case message.OpQuit:
		return message.Ok()

	case message.OpGet:
		v, ok, err := e.store.Get(req.Key)
		if err != nil {
			return storeErr(err)
		}
		if !ok {
			return message.Nil()
		}
		return message.Bulk(v)

	case message.OpSet:
		e.store.Set(req.Key, req.Val)
		return message.Ok()

	case message.OpIncr:
		n, err := e.store.Incr(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(n)

	case message.OpDecr:
		n, err := e.store.Decr(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(n)

	case message.OpIncrBy:
		n, err := e.store.IncrBy(req.Key, req.Delta)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(n)

	case message.OpDecrBy:
		n, err := e.store.DecrBy(req.Key, req.Delta)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(n)

	case message.OpExists:
		if e.store.Exists(req.Key) {
			return message.Integer(1)
		}
		return message.Integer(0)

	case message.OpDel:
		if e.store.Del(req.Key) {
			return message.Integer(1)
		}
		return message.Integer(0)

	case message.OpLPush:
		n, err := e.store.LPush(req.Key, req.Vals)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpRPush:
		n, err := e.store.RPush(req.Key, req.Vals)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpLPop:
		v, ok, err := e.store.LPop(req.Key)
		if err != nil {
			return storeErr(err)
		}
		if !ok {
			return message.Nil()
		}
		return message.Bulk(v)

	case message.OpRPop:
		v, ok, err := e.store.RPop(req.Key)
		if err != nil {
			return storeErr(err)
		}
		if !ok {
			return message.Nil()
		}
		return message.Bulk(v)

	case message.OpLLen:
		n, err := e.store.LLen(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpLRange:
		xs, err := e.store.LRange(req.Key, req.Start, req.Stop)
		if err != nil {
			return storeErr(err)
		}
		return message.Array(xs)

	case message.OpSAdd:
		n, err := e.store.SAdd(req.Key, req.Vals)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpSRem:
		n, err := e.store.SRem(req.Key, req.Vals)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpSMembers:
		xs, err := e.store.SMembers(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Array(xs)

	case message.OpSIsMember:
		ok, err := e.store.SIsMember(req.Key, req.Val)
		if err != nil {
			return storeErr(err)
		}
		if ok {
			return message.Integer(1)
		}
		return message.Integer(0)

	case message.OpSCard:
		n, err := e.store.SCard(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpHSet:
		n, err := e.store.HSet(req.Key, req.Field, req.Val)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpHGet:
		v, ok, err := e.store.HGet(req.Key, req.Field)
		if err != nil {
			return storeErr(err)
		}
		if !ok {
			return message.Nil()
		}
		return message.Bulk(v)

	case message.OpHDel:
		n, err := e.store.HDel(req.Key, req.Vals)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	case message.OpHExists:
		ok, err := e.store.HExists(req.Key, req.Field)
		if err != nil {
			return storeErr(err)
		}
		if ok {
			return message.Integer(1)
		}
		return message.Integer(0)

	case message.OpHKeys:
		xs, err := e.store.HKeys(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Array(xs)

	case message.OpHVals:
		xs, err := e.store.HVals(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Array(xs)

	case message.OpHLen:
		n, err := e.store.HLen(req.Key)
		if err != nil {
			return storeErr(err)
		}
		return message.Integer(int64(n))

	default:
		e.log.Warn("executor received request with unknown op", zap.Int("op", int(req.Op)))
		return message.Error("internal: unhandled request")
	}
}

// storeErr renders a store.Error as the wire format's
// "(error) <category>: <detail>" body — the Response layer still owns
// the leading "(error) " prefix.
func storeErr(err error) message.Response {
	if se, ok := err.(*store.Error); ok {
		return message.Error(fmt.Sprintf("%s: %s", se.Category, se.Detail))
	}
	return message.Error(err.Error())
}
