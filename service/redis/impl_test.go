package redis

import (
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/metrics"
)

var mockCtx = ctx.Background()

// memConn answers the handful of commands the service issues
type memConn struct {
	kv        map[string][]byte
	lists     map[string][][]byte
	published map[string][][]byte
	cmds      []string
}

func newMemConn() *memConn {
	return &memConn{
		kv:        map[string][]byte{},
		lists:     map[string][][]byte{},
		published: map[string][][]byte{},
	}
}

func (m *memConn) Close() error { return nil }
func (m *memConn) Err() error   { return nil }

func (m *memConn) Send(string, ...interface{}) error { return nil }
func (m *memConn) Flush() error                      { return nil }
func (m *memConn) Receive() (interface{}, error)     { return nil, nil }

func (m *memConn) Do(cmd string, args ...interface{}) (interface{}, error) {
	if cmd == "" {
		return nil, nil
	}
	m.cmds = append(m.cmds, cmd)
	switch cmd {
	case "GET":
		if v, ok := m.kv[args[0].(string)]; ok {
			return v, nil
		}
		return nil, nil
	case "SET":
		m.kv[args[0].(string)] = args[1].([]byte)
		return "OK", nil
	case "DEL":
		n := int64(0)
		for _, k := range args {
			if _, ok := m.kv[k.(string)]; ok {
				delete(m.kv, k.(string))
				n++
			}
		}
		return n, nil
	case "PUBLISH":
		ch := args[0].(string)
		m.published[ch] = append(m.published[ch], args[1].([]byte))
		return int64(1), nil
	case "RPUSH":
		k := args[0].(string)
		m.lists[k] = append(m.lists[k], args[1].([]byte))
		return int64(len(m.lists[k])), nil
	case "LTRIM":
		k := args[0].(string)
		m.lists[k] = slice(m.lists[k], args[1].(int), args[2].(int))
		return "OK", nil
	case "LRANGE":
		res := []interface{}{}
		for _, v := range slice(m.lists[args[0].(string)], args[1].(int), args[2].(int)) {
			res = append(res, v)
		}
		return res, nil
	}
	return nil, redis.Error("ERR unknown command " + cmd)
}

// slice applies redis inclusive range semantics with negative indexes
func slice(l [][]byte, start, end int) [][]byte {
	n := len(l)
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end {
		return nil
	}
	return l[start : end+1]
}

type redisSuite struct {
	suite.Suite

	conn *memConn
	im   Service
}

func TestRedisSuite(t *testing.T) {
	suite.Run(t, new(redisSuite))
}

func (s *redisSuite) SetupTest() {
	s.conn = newMemConn()
	pool := &redis.Pool{
		Dial: func() (redis.Conn, error) {
			return s.conn, nil
		},
	}
	s.im = New("test", metrics.New("redis"), &Pools{Src: pool})
}

func (s *redisSuite) TestGetSetDel() {
	_, err := s.im.Get(mockCtx, "probe:1:0xabc")
	s.ErrorIs(err, ErrNotFound)

	s.NoError(s.im.Set(mockCtx, "probe:1:0xabc", []byte("1"), time.Minute))
	s.NoError(s.im.Set(mockCtx, "probe:1:0xdef", []byte("0"), Forever))
	v, err := s.im.Get(mockCtx, "probe:1:0xabc")
	s.NoError(err)
	s.Equal([]byte("1"), v)

	n, err := s.im.Del(mockCtx, "probe:1:0xabc", "probe:1:0xdef", "probe:1:0x000")
	s.NoError(err)
	s.Equal(2, n)

	_, err = s.im.Del(mockCtx)
	s.Error(err)
}

func (s *redisSuite) TestPublish() {
	n, err := s.im.Publish(mockCtx, "market", []byte(`{"id":1}`))
	s.NoError(err)
	s.Equal(1, n)
	s.Equal([][]byte{[]byte(`{"id":1}`)}, s.conn.published["market"])
}

func (s *redisSuite) TestList() {
	for _, v := range []string{"a", "b", "c", "d"} {
		_, err := s.im.RPush(mockCtx, "events:0xabc", []byte(v))
		s.NoError(err)
	}
	s.NoError(s.im.LTrim(mockCtx, "events:0xabc", -3, -1))

	res, err := s.im.LRange(mockCtx, "events:0xabc", 0, 10)
	s.NoError(err)
	s.Equal([][]byte{[]byte("b"), []byte("c"), []byte("d")}, res)

	res, err = s.im.LRange(mockCtx, "events:0xabc", 1, 1)
	s.NoError(err)
	s.Equal([][]byte{[]byte("c")}, res)
}

func (s *redisSuite) TestNoPool() {
	im := New("empty", metrics.New("redis"), &Pools{})
	_, err := im.Publish(mockCtx, "market", nil)
	s.ErrorIs(err, ErrNoPool)
}
