// Package controller maps HTTP requests onto the user service.
package controller

import (
	"github.com/talky-chat/talky-api/models"
)

var users *models.UserService

// Init wires the controllers to the service they dispatch to. main.go calls
// this once the store and object storage clients exist.
func Init(svc *models.UserService) {
	users = svc
}
