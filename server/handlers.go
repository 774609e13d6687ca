package server

import (
	"net/http"

	"github.com/talky-chat/talky-api/controller"
)

var (
	apiHandlers = map[string]func(http.ResponseWriter, *http.Request){
		"/api/v1/users": controller.UsersHandler,
		"/api/v1/users/{user_id:[0-9a-zA-Z_-]+}":        controller.UserHandler,
		"/api/v1/users/{user_id:[0-9a-zA-Z_-]+}/avatar": controller.AvatarHandler,
	}
)
