package routes

import (
	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, reg *Registry) {
	if r == nil || reg == nil {
		return
	}

	if reg.dashboard != nil {
		reg.dashboard.RegisterRoutes(r.Group("/dashboard"))
	}

	if reg.admin != nil && reg.adminAuth != nil {
		reg.admin.RegisterRoutes(r.Group("/admin"), reg.adminAuth.Middleware())
	}
}
