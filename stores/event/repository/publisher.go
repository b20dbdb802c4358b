package repository

import (
	"encoding/json"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/event"
	"github.com/x-xyz/gomarket/domain/keys"
	"github.com/x-xyz/gomarket/service/redis"
)

type PublisherCfg struct {
	Redis   redis.Service
	Channel string
	// History is the number of messages kept per contract, 0 keeps none
	History int
}

type publisher struct {
	redis   redis.Service
	channel string
	history int
}

// NewPublisher publishes messages on a redis channel and keeps the latest
// ones of every contract in a capped list
func NewPublisher(cfg *PublisherCfg) event.Publisher {
	return &publisher{
		redis:   cfg.Redis,
		channel: cfg.Channel,
		history: cfg.History,
	}
}

func historyKey(contract domain.Address) string {
	return keys.RedisKey(keys.PfxEvents, contract.ToLowerStr())
}

func (im *publisher) Publish(c ctx.Ctx, m *event.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return err
	}

	if _, err := im.redis.Publish(c, im.channel, payload); err != nil {
		c.WithFields(log.Fields{
			"channel": im.channel,
			"err":     err,
		}).Error("redis.Publish failed")
		return err
	}

	if im.history <= 0 {
		return nil
	}
	key := historyKey(m.Contract)
	if _, err := im.redis.RPush(c, key, payload); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("redis.RPush failed")
		return err
	}
	if err := im.redis.LTrim(c, key, -im.history, -1); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("redis.LTrim failed")
		return err
	}
	return nil
}

func (im *publisher) Recent(c ctx.Ctx, contract domain.Address, count int) ([]*event.Message, error) {
	if count <= 0 {
		return nil, domain.ErrBadParamInput
	}
	vals, err := im.redis.LRange(c, historyKey(contract), -count, count)
	if err != nil {
		c.WithField("err", err).Error("redis.LRange failed")
		return nil, err
	}

	res := make([]*event.Message, 0, len(vals))
	for _, v := range vals {
		m := &event.Message{}
		if err := json.Unmarshal(v, m); err != nil {
			c.WithField("err", err).Error("json.Unmarshal failed")
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}
