package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/gmbdash/gmb-backend/internal/config"
	"github.com/gmbdash/gmb-backend/internal/database"
	"github.com/gmbdash/gmb-backend/internal/handlers"
	"github.com/gmbdash/gmb-backend/internal/routes"
	"github.com/gmbdash/gmb-backend/internal/services"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	if cfg.ClaudeAPIKey == "" {
		log.Println("⚠️  WARNING: CLAUDE_API_KEY not set. Post generation and sentiment analysis will fail.")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("⚠️  WARNING: OPENAI_API_KEY not set. Image generation will fail.")
	}

	// Flat-file post store (created empty if missing)
	fileStore, err := services.NewFileStore(cfg.PostsFile)
	if err != nil {
		log.Fatal("Failed to open posts file: ", err)
	}

	// Connect to MongoDB. The file-store half of the dashboard works
	// without it, so a failed connection is logged, not fatal; the MongoDB
	// endpoints answer 500 until the process is restarted.
	log.Printf("Connecting to MongoDB...")
	log.Printf("MongoDB URI: %s", maskMongoURI(cfg.MongoURI))
	var postStore *services.PostStore
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Printf("❌ MongoDB connection error: %v", err)
	} else {
		postStore = services.NewPostStore(db)
		defer database.Disconnect(db)
	}

	// Redis is only needed for the generation rate limiter
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		redisClient, err = database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("⚠️  WARNING: Redis connection failed: %v. Generation routes run unthrottled.", err)
			redisClient = nil
		}
	} else {
		log.Println("REDIS_URI not set. Generation routes run unthrottled.")
	}

	// Cloudinary mirroring is optional
	var cloudinaryService *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinaryService, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Generated images will keep their provider URLs")
		} else {
			log.Println("✅ Cloudinary image mirroring enabled")
		}
	} else {
		log.Println("Cloudinary credentials not found. Generated images will keep their provider URLs")
	}

	feedHub := services.NewFeedHub()

	h := buildHandlers(cfg, fileStore, postStore, cloudinaryService, feedHub)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h, redisClient)

	log.Printf("🚀 GMB AI backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func buildHandlers(cfg *config.Config, fileStore *services.FileStore, postStore *services.PostStore, cloudinaryService *services.CloudinaryService, feedHub *services.FeedHub) routes.Handlers {
	anthropicClient := services.NewAnthropicClient(cfg.ClaudeAPIKey, "")
	openAIClient := services.NewOpenAIClient(cfg.OpenAIAPIKey, "")

	return routes.Handlers{
		Generate: &handlers.GenerateHandler{
			Anthropic:  anthropicClient,
			OpenAI:     openAIClient,
			Cloudinary: cloudinaryService,
		},
		Posts:      &handlers.PostsHandler{Store: fileStore, Feed: feedHub},
		MongoPosts: &handlers.MongoPostsHandler{Store: postStore, Feed: feedHub},
		Sentiment:  &handlers.SentimentHandler{Anthropic: anthropicClient},
		Feed:       &handlers.FeedHandler{Feed: feedHub},
	}
}

// maskMongoURI hides the password portion of a connection string for logs.
func maskMongoURI(uri string) string {
	if !strings.Contains(uri, "@") {
		return uri
	}
	parts := strings.SplitN(uri, "@", 2)
	if idx := strings.LastIndex(parts[0], ":"); idx != -1 && strings.Contains(parts[0], "://") {
		userPart := parts[0][:idx]
		if strings.Contains(userPart, "://") && !strings.HasSuffix(userPart, "/") {
			return userPart + ":***@" + parts[1]
		}
	}
	return uri
}
