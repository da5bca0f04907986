// util for pulling the authenticated actor out of echo context.
package jwtx

import (
	"github.com/labstack/echo/v4"

	"storagebooking/model"
)

// ActorFromContext reads the actor the auth middleware stashed on the
// context.
func ActorFromContext(c echo.Context) model.Actor {
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(model.Role)
	return model.Actor{ID: uid, Role: role}
}
