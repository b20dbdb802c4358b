package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/gomarket/base/ctx"
	"github.com/x-xyz/gomarket/domain"
	"github.com/x-xyz/gomarket/domain/listing"
	"github.com/x-xyz/gomarket/service/query"
	mQuery "github.com/x-xyz/gomarket/service/query/mocks"
)

var mockCtx = ctx.Background()

type recordSuite struct {
	suite.Suite

	q  *mQuery.Mongo
	im listing.RecordRepo
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(recordSuite))
}

func (s *recordSuite) SetupTest() {
	s.q = &mQuery.Mongo{}
	s.im = NewRecordRepo(s.q)
}

func (s *recordSuite) TearDownTest() {
	s.q.AssertExpectations(s.T())
}

func (s *recordSuite) TestUpsert() {
	r := &listing.Record{Id: 3, Creator: "0xabc"}
	s.q.On("Upsert", mockCtx, domain.TableListings, bson.M{"_id": uint64(3)}, r).Return(nil).Once()
	s.NoError(s.im.Upsert(mockCtx, r))

	errMongo := errors.New("mongo down")
	s.q.On("Upsert", mockCtx, domain.TableListings, bson.M{"_id": uint64(4)}, mock.Anything).Return(errMongo).Once()
	s.ErrorIs(s.im.Upsert(mockCtx, &listing.Record{Id: 4}), errMongo)
}

func (s *recordSuite) TestFindOne() {
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": uint64(1)}, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(3).(*listing.Record).Creator = "0xabc"
		}).Return(nil).Once()
	r, err := s.im.FindOne(mockCtx, 1)
	s.Require().NoError(err)
	s.Equal(domain.Address("0xabc"), r.Creator)

	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": uint64(2)}, mock.Anything).Return(query.ErrNotFound).Once()
	_, err = s.im.FindOne(mockCtx, 2)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *recordSuite) TestFindAll() {
	qry := bson.M{
		"creator": domain.Address("0xabc"),
		"status":  listing.StatusOpen,
	}
	s.q.On("Search", mockCtx, domain.TableListings, 20, 10, "-_id", qry, mock.Anything).
		Run(func(args mock.Arguments) {
			res := args.Get(6).(*[]*listing.Record)
			*res = append(*res, &listing.Record{Id: 9}, &listing.Record{Id: 8})
		}).Return(nil).Once()

	res, err := s.im.FindAll(mockCtx,
		listing.WithCreator("0xABC"),
		listing.WithStatus(listing.StatusOpen),
		listing.WithPagination(20, 10),
		listing.WithSort("-id"),
	)
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal(uint64(9), res[0].Id)
}

func (s *recordSuite) TestFindAllBadPagination() {
	_, err := s.im.FindAll(mockCtx, listing.WithPagination(-1, 10))
	s.ErrorIs(err, domain.ErrBadParamInput)
}
