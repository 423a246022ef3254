package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DBContextKey is where DBMiddleware stores the *gorm.DB handle.
const DBContextKey = "db"

// DBMiddleware injects the connection pool into the request context so
// handlers can hand it to services. Tests swap in a transaction instead.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBContextKey, db)
		c.Next()
	}
}
