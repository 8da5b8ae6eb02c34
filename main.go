package main

import (
	"fmt"
	"net/http"
	"time"
	"vocab-center/auth"
	"vocab-center/config"
	"vocab-center/controllers"
	"vocab-center/database"
	"vocab-center/registry"
	"vocab-center/repositories"
	"vocab-center/services"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	restful "github.com/emicklei/go-restful/v3"
	"go.uber.org/zap"
)

// RequestLogFilter logs every request after it has been handled.
func RequestLogFilter(logger *zap.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		startTime := time.Now()

		chain.ProcessFilter(req, resp)

		latency := time.Since(startTime)
		logger.Info("Request",
			zap.String("client_ip", req.Request.RemoteAddr),
			zap.String("method", req.Request.Method),
			zap.Int("status_code", resp.StatusCode()),
			zap.Duration("latency", latency),
			zap.String("user_agent", req.Request.UserAgent()),
			zap.String("path", req.Request.URL.Path),
		)
	}
}

func main() {
	// Initialize configs
	config.InitConfig()

	var logger *zap.Logger
	switch config.AppConfig.LogLevel {
	case "debug":
		logger, _ = zap.NewDevelopment()
	case "info":
		logger, _ = zap.NewProduction()
	default:
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync() // Make sure the buffer is flushed before the program exits

	auth.SetSigningKey([]byte(config.AppConfig.JwtSecret))
	auth.SetTokenTTL(time.Duration(config.AppConfig.TokenTTLHours) * time.Hour)

	db := database.InitDB()

	userRepo := repositories.NewUserRepository(db)
	wordRepo := repositories.NewWordRepository(db)
	setRepo := repositories.NewSetRepository(db)

	userService := services.NewUserService(userRepo)
	vocabService := services.NewVocabService(wordRepo, setRepo)

	sessionFilter := auth.AuthFilter(userService)

	userController := controllers.NewUserController(userService)
	wordController := controllers.NewWordController(vocabService, sessionFilter)
	setController := controllers.NewSetController(vocabService, sessionFilter)

	container := restful.NewContainer()
	container.Filter(RequestLogFilter(logger))

	rootWS := new(restful.WebService)
	userController.RegisterRoutes(rootWS)
	rootWS.Route(rootWS.GET("/health").To(func(req *restful.Request, resp *restful.Response) {
		_ = resp.WriteHeaderAndJson(http.StatusOK, map[string]string{"status": "ok"}, restful.MIME_JSON)
	}))
	container.Add(rootWS)

	wordWS := new(restful.WebService)
	wordController.RegisterRoutes(wordWS)
	container.Add(wordWS)

	setWS := new(restful.WebService)
	setController.RegisterRoutes(setWS)
	container.Add(setWS)

	// OpenAPI document for the registered services
	apiConfig := restfulspec.Config{
		WebServices: container.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}
	container.Add(restfulspec.NewOpenAPIService(apiConfig))

	// Optional Consul registration for the HTTP service
	if config.AppConfig.RegisterService {
		reg, err := registry.NewConsulRegistry(logger.Sugar())
		if err != nil {
			logger.Fatal("Failed to create service registry", zap.Error(err))
		}
		serviceID := fmt.Sprintf("%s-%d", config.AppConfig.ServiceName, config.AppConfig.HTTPPort)
		check := registry.CreateHTTPCheck(serviceID, "127.0.0.1", config.AppConfig.HTTPPort, "/health", "10s", "1s")
		if err := reg.Register(serviceID, config.AppConfig.ServiceName, "127.0.0.1", config.AppConfig.HTTPPort, []string{"http"}, check); err != nil {
			logger.Fatal("Failed to register service", zap.Error(err))
		}
		defer func() {
			if err := reg.Deregister(serviceID); err != nil {
				logger.Error("Failed to deregister service", zap.Error(err))
			}
		}()
	}

	addr := fmt.Sprintf(":%d", config.AppConfig.HTTPPort)
	logger.Info("Starting server", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, container); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
