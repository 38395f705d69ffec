package main

import (
	"net/http"

	"github.com/riple-app/backend/internal/middleware"
	"github.com/riple-app/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	handler := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(s.router.Handler())

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: handler,
	}

	s.logger.Infof("Starting api server on %s", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	s.logger.Infof("Api server stopped")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/register", s.authDomain.Register)
		router.POST(publicRouter, "/login", s.authDomain.Login)
		router.GET(publicRouter, "/getGroups", s.communityDomain.GetGroups)
		router.GET(publicRouter, "/getPosts", s.feedDomain.GetPosts)
	}

	// These following APIs need authentication with an access token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier())
	{
		// Auth API
		router.POST(authRouter, "/logout", s.authDomain.Logout)

		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/updateProfile", s.userDomain.UpdateProfile)

		// Habit API
		router.GET(authRouter, "/getHabits", s.habitDomain.GetList)
		router.POST(authRouter, "/addHabit", s.habitDomain.Add)
		router.POST(authRouter, "/toggleHabit", s.habitDomain.Toggle)
		router.POST(authRouter, "/updateHabitProgress", s.habitDomain.UpdateProgress)
		router.POST(authRouter, "/updateHabit", s.habitDomain.Update)
		router.POST(authRouter, "/removeHabit", s.habitDomain.Remove)

		// Community API
		router.POST(authRouter, "/createGroup", s.communityDomain.CreateGroup)
		router.POST(authRouter, "/joinGroup", s.communityDomain.JoinGroup)
		router.POST(authRouter, "/leaveGroup", s.communityDomain.LeaveGroup)
		router.GET(authRouter, "/getMyMemberships", s.communityDomain.GetMyMemberships)

		// Feed API
		router.POST(authRouter, "/createPost", s.feedDomain.CreatePost)
		router.POST(authRouter, "/addComment", s.feedDomain.AddComment)
		router.POST(authRouter, "/likePost", s.feedDomain.LikePost)
		router.POST(authRouter, "/likeComment", s.feedDomain.LikeComment)

		// Daily task API
		router.GET(authRouter, "/getDailyTask", s.dailyTaskDomain.Get)
	}
}
