package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/sardor-dev/myid-auth/core"
)

type Adapter struct {
	app  *fiber.App
	auth core.AuthHandler
	db   core.AuthStorage
}

func New(app *fiber.App, auth core.AuthHandler, db core.AuthStorage) *Adapter {
	return &Adapter{
		app:  app,
		auth: auth,
		db:   db,
	}
}

func (a *Adapter) RegisterRoutes() error {
	// Enrollment flow
	a.app.Get("/", a.begin)
	a.app.Get("/myid-redirect", a.callback)

	// Lookup
	a.app.Get("/user/:pinfl", a.userInfo)

	// Protected by the locally issued token
	a.app.Get("/me", a.requireToken, a.me)

	return nil
}
