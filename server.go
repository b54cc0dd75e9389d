package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"yatube/api/handlers"
	"yatube/api/middleware"
	"yatube/api/routes"
	"yatube/config"
	"yatube/db"
	"yatube/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	if err := config.LoadConfig(configPath); err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting yatube server...")

	if err := db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis: кеш главной ленты и очередь оповещений подписчиков.
	// Без него работаем в режиме прямого рендера.
	if err := services.InitRedis(); err != nil {
		log.Printf("Warning: Redis unavailable, feed cache and notify queue disabled: %v", err)
	} else {
		defer services.CloseRedis()
		services.QueueServiceInstance.StartWorkers(ctx)
		handlers.SetFeedCache(services.NewFeedCache(
			&services.RedisCacheBackend{Client: services.RedisClient},
			config.AppConfig.CacheWindow(),
		))
	}

	// RabbitMQ: события "новый пост у автора из подписок" -> WebSocket
	if err := services.InitRabbitMQ(); err != nil {
		log.Printf("Warning: RabbitMQ unavailable, falling back to direct WebSocket push: %v", err)
	} else {
		defer services.CloseRabbitMQ()
		if err := services.StartFeedEventConsumer(ctx, "feed_events_ws"); err != nil {
			log.Printf("Warning: failed to start feed event consumer: %v", err)
		}
	}

	// MinIO: картинки постов
	if err := services.InitStorage(ctx); err != nil {
		log.Printf("Warning: media storage unavailable, post images disabled: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("yatube"))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	routes.PublicApi(router)

	addr := ":8080"
	if config.AppConfig.Backend.Port != 0 {
		addr = fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
