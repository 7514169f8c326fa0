// controller/controllers.go
package controller

import "github.com/keyward/keyward/service"

type Controllers struct {
	Policy         *PolicyController
	CredentialType *CredentialTypeController
	Application    *ApplicationController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Policy:         NewPolicyController(services.Policy),
		CredentialType: NewCredentialTypeController(services.Policy),
		Application:    NewApplicationController(services.Application),
	}
}
