package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func PerformanceLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Msg("request")

		// Alert for slow requests
		if latency > 200*time.Millisecond {
			log.Warn().
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Dur("latency", latency).
				Msg("slow request")
		}
	}
}
