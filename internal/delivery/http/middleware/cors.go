package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS - middleware для Cross-Origin запросов. API только читает данные,
// поэтому разрешены GET и OPTIONS с любого origin.
func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,OPTIONS",
		AllowHeaders:  "Content-Type,Accept,Accept-Language,X-Request-ID",
		ExposeHeaders: HeaderRequestID,
	})
}
