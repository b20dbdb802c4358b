package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/metrics"
	"github.com/x-xyz/gomarket/domain/keys"
)

type redImpl struct {
	name  string
	met   metrics.Service
	pools *Pools
}

// Pools represents different pool types
type Pools struct {
	Src *redis.Pool
}

// New redis service
func New(name string, metrics metrics.Service, pools *Pools) Service {
	return &redImpl{
		name:  name,
		met:   metrics,
		pools: pools,
	}
}

func (r *redImpl) getConn() (redis.Conn, error) {
	defer r.met.BumpTime("getconn.time", "cluster", r.name).End()
	if r.pools == nil || r.pools.Src == nil {
		return nil, ErrNoPool
	}

	conn := r.pools.Src.Get()
	if err := conn.Err(); err != nil {
		r.met.BumpSum("getConn.err", 1, "cluster", r.name, "reason", err.Error())
		return nil, err
	}
	return conn, nil
}

func (r *redImpl) connDo(context ctx.Ctx, commandName string, args ...interface{}) (interface{}, error) {
	conn, err := r.getConn()
	if err != nil {
		return nil, err
	}

	reply, err := conn.Do(commandName, args...)

	// return the connection to the pool as soon as possible
	if err := conn.Close(); err != nil {
		r.met.BumpSum("conn.Close.err", 1, "cluster", r.name)
	}
	return reply, err
}

func (r *redImpl) Get(context ctx.Ctx, key string) ([]byte, error) {
	tags := []string{"func", "get", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.Bytes(r.connDo(context, "GET", key))
	if err == redis.ErrNil {
		r.met.BumpSum("miss", 1, tags...)
		return nil, ErrNotFound
	} else if err != nil {
		context.WithField("err", err).Error("GET redis failed")
		return nil, err
	}
	r.met.BumpSum("hit", 1, tags...)
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)
	return val, nil
}

func (r *redImpl) Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error {
	tags := []string{"func", "set", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()
	r.met.BumpHistogram("bytes", float64(len(val)), tags...)

	var err error
	if expire == Forever {
		r.met.BumpSum("ttl.forever", 1, tags...)
		_, err = r.connDo(context, "SET", key, val)
	} else {
		r.met.BumpAvg("ttl", expire.Seconds(), tags...)
		_, err = r.connDo(context, "SET", key, val, "PX", int(expire/time.Millisecond))
	}
	if err != nil {
		context.WithField("err", err).Error("SET redis failed")
	}
	return err
}

func (r *redImpl) Del(context ctx.Ctx, ks ...string) (int, error) {
	if len(ks) == 0 {
		return 0, fmt.Errorf("length of keys is 0")
	}

	defer r.met.BumpTime("time", "func", "del", "cluster", r.name, "prefix", keys.GetPrefix(ks[0])).End()
	res, err := redis.Int(r.connDo(context, "DEL", redis.Args{}.AddFlat(ks)...))
	if err != nil {
		context.WithField("err", err).Error("DEL redis failed")
		return 0, err
	}
	return res, nil
}

func (r *redImpl) Publish(context ctx.Ctx, channel string, payload []byte) (int, error) {
	defer r.met.BumpTime("time", "func", "publish", "cluster", r.name, "channel", channel).End()
	r.met.BumpHistogram("bytes", float64(len(payload)), "func", "publish", "cluster", r.name, "channel", channel)

	n, err := redis.Int(r.connDo(context, "PUBLISH", channel, payload))
	if err != nil {
		context.WithField("err", err).Error("PUBLISH redis failed")
		return 0, err
	}
	return n, nil
}

func (r *redImpl) RPush(context ctx.Ctx, key string, val []byte) (int, error) {
	defer r.met.BumpTime("time", "func", "RPush", "cluster", r.name, "prefix", keys.GetPrefix(key)).End()
	r.met.BumpHistogram("bytes", float64(len(val)), "func", "RPush", "cluster", r.name, "prefix", keys.GetPrefix(key))

	listSize, err := redis.Int(r.connDo(context, "RPUSH", key, val))
	if err != nil {
		context.WithField("err", err).Error("RPush redis failed")
		return 0, err
	}
	return listSize, nil
}

func (r *redImpl) LTrim(context ctx.Ctx, key string, start, end int) error {
	defer r.met.BumpTime("time", "func", "ltrim", "cluster", r.name, "prefix", keys.GetPrefix(key)).End()
	_, err := r.connDo(context, "LTRIM", key, start, end)
	if err != nil {
		context.WithField("err", err).Error("LTrim redis failed")
	}
	return err
}

func (r *redImpl) LRange(context ctx.Ctx, key string, offset, count int) ([][]byte, error) {
	tags := []string{"func", "LRANGE", "cluster", r.name, "prefix", keys.GetPrefix(key)}
	defer r.met.BumpTime("time", tags...).End()

	val, err := redis.ByteSlices(r.connDo(context, "LRANGE", key, offset, count-1+offset))
	if err != nil {
		context.WithField("err", err).Error("LRANGE redis failed")
		return nil, err
	}
	r.met.BumpHistogram("elements", float64(len(val)), tags...)
	return val, nil
}
