package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/gmbdash/gmb-backend/internal/handlers"
	"github.com/gmbdash/gmb-backend/internal/middleware"
)

// Handlers bundles the constructed handler set wired into the router.
type Handlers struct {
	Generate   *handlers.GenerateHandler
	Posts      *handlers.PostsHandler
	MongoPosts *handlers.MongoPostsHandler
	Sentiment  *handlers.SentimentHandler
	Feed       *handlers.FeedHandler
}

// SetupRoutes registers the API surface. When rdb is non-nil the routes
// that spend upstream quota get the Redis rate limiter; everything else is
// unthrottled.
func SetupRoutes(r *chi.Mux, h Handlers, rdb *redis.Client) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("GMB AI Backend Running"))
	})

	// Generation + sentiment routes call paid provider APIs
	r.Group(func(r chi.Router) {
		if rdb != nil {
			r.Use(middleware.GenerationRateLimit(rdb))
		}
		r.Post("/generate-post", h.Generate.GeneratePost)
		r.Post("/generate-image", h.Generate.GenerateImage)
		r.Post("/generate-content", h.Generate.GenerateContent)
		r.Post("/analyze-sentiment", h.Sentiment.AnalyzeSentiment)
	})
	r.Get("/test-openai", h.Generate.TestOpenAI)

	// Flat-file post collection
	r.Post("/save-post", h.Posts.SavePost)
	r.Get("/posts", h.Posts.ListPosts)

	// MongoDB post collection
	r.Post("/post-to-mongodb", h.MongoPosts.PostToMongo)
	r.Get("/mongodb-posts", h.MongoPosts.ListMongoPosts)

	// Live feed for open dashboard tabs
	r.Get("/ws/posts", h.Feed.PostsFeed)
}
