package notify

import (
	"context"
	"net/http"

	"github.com/chideraa89/first-attempt-ecommerce-site/api/web"
)

func HandleList(hub *Hub) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return web.Respond(ctx, w, hub.Active(), http.StatusOK)
	}
}
