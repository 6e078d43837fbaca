package pendingchoices

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient *redis.Client
	mock       redismock.ClientMock
	repo       Repository
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.repo = NewRedisRepository(&RedisRepoConfig{Client: s.mockClient})
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) TestPut() {
	ctx := context.Background()
	choice := testChoice("guild-1", "player-1")

	expectedData, err := json.Marshal(choice)
	s.Require().NoError(err)

	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("pending:guild-1:player-1", expectedData, defaultChoiceTTL).SetVal("OK")
	s.mock.ExpectSAdd("pending:guild:guild-1", "player-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Put(ctx, choice))

	// Input validation
	s.Error(s.repo.Put(ctx, nil))
}

func (s *RedisRepoTestSuite) TestGet() {
	ctx := context.Background()
	choice := testChoice("guild-1", "player-1")

	data, err := json.Marshal(choice)
	s.Require().NoError(err)

	// Happy path
	s.mock.ExpectGet("pending:guild-1:player-1").SetVal(string(data))

	got, err := s.repo.Get(ctx, "guild-1", "player-1")
	s.NoError(err)
	s.Equal(choice.Command, got.Command)
	s.Equal(choice.Answers, got.Answers)

	// Missing entry
	s.mock.ExpectGet("pending:guild-1:player-2").RedisNil()

	_, err = s.repo.Get(ctx, "guild-1", "player-2")
	s.ErrorIs(err, ErrNotFound)

	// Dependency error
	s.mock.ExpectGet("pending:guild-1:player-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Get(ctx, "guild-1", "player-1")
	s.Error(err)
	s.NotErrorIs(err, ErrNotFound)
}

func (s *RedisRepoTestSuite) TestDelete() {
	ctx := context.Background()

	// Happy path
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("pending:guild-1:player-1").SetVal(1)
	s.mock.ExpectSRem("pending:guild:guild-1", "player-1").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	s.NoError(s.repo.Delete(ctx, "guild-1", "player-1"))

	// Missing entry
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("pending:guild-1:player-2").SetVal(0)
	s.mock.ExpectSRem("pending:guild:guild-1", "player-2").SetVal(0)
	s.mock.ExpectTxPipelineExec()

	s.ErrorIs(s.repo.Delete(ctx, "guild-1", "player-2"), ErrNotFound)
}

func (s *RedisRepoTestSuite) TestDeleteGuild() {
	ctx := context.Background()

	s.mock.ExpectSMembers("pending:guild:guild-1").SetVal([]string{"player-1", "player-2"})
	s.mock.ExpectDel(
		"pending:guild-1:player-1",
		"pending:guild-1:player-2",
		"pending:guild:guild-1",
	).SetVal(3)

	s.NoError(s.repo.DeleteGuild(ctx, "guild-1"))
}
