package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/option"
	"github.com/x-xyz/gomarket/service/query"
)

type recordImpl struct {
	q query.Mongo
}

func NewRecordRepo(q query.Mongo) option.RecordRepo {
	return &recordImpl{q}
}

func (im *recordImpl) Upsert(c ctx.Ctx, r *option.Record) error {
	if err := im.q.Upsert(c, domain.TableOptions, bson.M{"_id": r.Id}, r); err != nil {
		c.WithFields(log.Fields{
			"id":  r.Id,
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *recordImpl) FindOne(c ctx.Ctx, id uint64) (*option.Record, error) {
	res := &option.Record{}
	if err := im.q.FindOne(c, domain.TableOptions, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *recordImpl) FindAll(c ctx.Ctx, optFns ...option.FindAllOptions) ([]*option.Record, error) {
	opts, err := option.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("option.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	sort := "_id"
	switch opts.SortBy {
	case "", "id":
	case "-id":
		sort = "-_id"
	default:
		sort = opts.SortBy
	}
	res := []*option.Record{}
	if err := im.q.Search(c, domain.TableOptions, opts.Offset, opts.Limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
