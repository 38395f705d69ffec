package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/riple-app/backend/config"
	"github.com/riple-app/backend/internal/appstate"
	"github.com/riple-app/backend/internal/domain"
	"github.com/riple-app/backend/internal/repository"
	"github.com/riple-app/backend/pkg/api/openai"
	"github.com/riple-app/backend/pkg/logger"
	"github.com/riple-app/backend/pkg/router"
	"github.com/riple-app/backend/pkg/xcontext"
	"github.com/riple-app/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client

	userRepo        repository.UserRepository
	groupRepo       repository.GroupRepository
	groupMemberRepo repository.GroupMemberRepository
	postRepo        repository.PostRepository
	commentRepo     repository.CommentRepository

	stateManager *appstate.Manager
	openaiCaller openai.Caller

	authDomain      domain.AuthDomain
	userDomain      domain.UserDomain
	communityDomain domain.CommunityDomain
	feedDomain      domain.FeedDomain
	habitDomain     domain.HabitDomain
	dailyTaskDomain domain.DailyTaskDomain

	router *router.Router
	server *http.Server
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func (s *srv) loadConfig() {
	configFile := getEnv("CONFIG_FILE", "config.toml")
	if _, err := os.Stat(configFile); err == nil {
		if _, err := toml.DecodeFile(configFile, &s.configs); err != nil {
			panic(err)
		}
	}

	s.configs.Env = getEnv("ENV", s.configs.Env)
	s.configs.ApiServer.Host = getEnv("HOST", s.configs.ApiServer.Host)
	s.configs.ApiServer.Port = getEnv("PORT", s.configs.ApiServer.Port)
	s.configs.Database.Host = getEnv("MYSQL_HOST", s.configs.Database.Host)
	s.configs.Database.Port = getEnv("MYSQL_PORT", s.configs.Database.Port)
	s.configs.Database.Database = getEnv("MYSQL_DATABASE", s.configs.Database.Database)
	s.configs.Database.User = getEnv("MYSQL_USER", s.configs.Database.User)
	s.configs.Database.Password = getEnv("MYSQL_PASSWORD", s.configs.Database.Password)
	s.configs.Redis.Addr = getEnv("REDIS_ADDR", s.configs.Redis.Addr)
	s.configs.Auth.TokenSecret = getEnv("TOKEN_SECRET", s.configs.Auth.TokenSecret)
	s.configs.DailyTask.OpenAIAPIKey = getEnv("OPENAI_API_KEY", s.configs.DailyTask.OpenAIAPIKey)

	if s.configs.Env == "" {
		s.configs.Env = "local"
	}
	if s.configs.ApiServer.Port == "" {
		s.configs.ApiServer.Port = "8080"
	}
	if s.configs.Auth.AccessToken.Name == "" {
		s.configs.Auth.AccessToken.Name = "access_token"
	}
	if s.configs.Auth.AccessToken.Expiration == 0 {
		s.configs.Auth.AccessToken.Expiration = 24 * time.Hour
	}
	if s.configs.DailyTask.Model == "" {
		s.configs.DailyTask.Model = "gpt-3.5-turbo"
	}
	if s.configs.DailyTask.MaxTokens == 0 {
		s.configs.DailyTask.MaxTokens = 50
	}
	if s.configs.DailyTask.Temperature == 0 {
		if v, err := strconv.ParseFloat(getEnv("OPENAI_TEMPERATURE", "0.7"), 64); err == nil {
			s.configs.DailyTask.Temperature = v
		}
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if s.configs.Env == "local" {
		level = logger.DEBUG
	}

	s.logger = logger.NewLogger(level)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.groupRepo = repository.NewGroupRepository()
	s.groupMemberRepo = repository.NewGroupMemberRepository()
	s.postRepo = repository.NewPostRepository()
	s.commentRepo = repository.NewCommentRepository()
}

func (s *srv) loadDomains() {
	s.stateManager = appstate.NewManager(appstate.NewRedisPersister(s.redisClient))
	if s.configs.DailyTask.OpenAIAPIKey != "" {
		s.openaiCaller = openai.NewClient(s.configs.DailyTask.OpenAIAPIKey)
	}

	s.authDomain = domain.NewAuthDomain(s.userRepo, s.stateManager)
	s.userDomain = domain.NewUserDomain(s.userRepo, s.stateManager)
	s.communityDomain = domain.NewCommunityDomain(s.groupRepo, s.groupMemberRepo, s.stateManager)
	s.feedDomain = domain.NewFeedDomain(s.postRepo, s.commentRepo, s.userRepo, s.stateManager)
	s.habitDomain = domain.NewHabitDomain(s.stateManager)
	s.dailyTaskDomain = domain.NewDailyTaskDomain(s.stateManager, s.openaiCaller)
}
