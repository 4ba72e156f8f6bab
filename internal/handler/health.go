package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Health reports liveness and database reachability.
func Health(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			if err := db.PingContext(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, NewErrorResponse("database unreachable"))
				return
			}
		}
		JSON(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
