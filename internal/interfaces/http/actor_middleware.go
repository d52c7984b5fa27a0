package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mf-comercial/internal/application/console"
)

// HeaderActor cabecera con el usuario que firma la bitácora.
const HeaderActor = "X-Actor"

// LocalActor clave en c.Locals del usuario de la petición.
const LocalActor = "actor"

// ActorMiddleware lee X-Actor y lo deja en c.Locals y en el contexto de usuario.
// Sin cabecera las transiciones firman con el actor por defecto.
func ActorMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := strings.TrimSpace(c.Get(HeaderActor))
		if actor != "" {
			c.Locals(LocalActor, actor)
			c.SetUserContext(console.WithActor(c.UserContext(), actor))
		}
		return c.Next()
	}
}

// GetActor devuelve el usuario de la petición (después de ActorMiddleware).
func GetActor(c *fiber.Ctx) string {
	v := c.Locals(LocalActor)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
