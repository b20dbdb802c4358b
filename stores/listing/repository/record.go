package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/base/database/mongoclient"
	"github.com/x-xyz/gomarket/base/log"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/listing"
	"github.com/x-xyz/gomarket/service/query"
)

type recordImpl struct {
	q query.Mongo
}

// NewRecordRepo mirrors committed listings into the listings collection
func NewRecordRepo(q query.Mongo) listing.RecordRepo {
	return &recordImpl{q}
}

func (im *recordImpl) Upsert(c ctx.Ctx, r *listing.Record) error {
	if err := im.q.Upsert(c, domain.TableListings, bson.M{"_id": r.Id}, r); err != nil {
		c.WithFields(log.Fields{
			"id":  r.Id,
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *recordImpl) FindOne(c ctx.Ctx, id uint64) (*listing.Record, error) {
	res := &listing.Record{}
	if err := im.q.FindOne(c, domain.TableListings, bson.M{"_id": id}, res); err == query.ErrNotFound {
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

func (im *recordImpl) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptions) ([]*listing.Record, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}

	qry, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithField("err", err).Error("mongoclient.MakeBsonM failed")
		return nil, err
	}

	sort := "_id"
	if opts.SortBy == "-id" {
		sort = "-_id"
	} else if opts.SortBy != "" && opts.SortBy != "id" {
		sort = opts.SortBy
	}
	res := []*listing.Record{}
	if err := im.q.Search(c, domain.TableListings, opts.Offset, opts.Limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}
