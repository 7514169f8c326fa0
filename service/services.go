// service/services.go
package service

import (
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/keyward/keyward/audit"
	"github.com/keyward/keyward/dao"
	"github.com/keyward/keyward/pdp/validator"
	"github.com/keyward/keyward/schema"
	"github.com/keyward/keyward/util"
)

type Services struct {
	Policy      IPolicyService
	Application IApplicationService
}

func InitializeServices(
	driver neo4j.Driver,
	registry *schema.Registry,
	auditService audit.Service,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	policyDAO := dao.NewPolicyDAO(driver, auditService)
	applicationDAO := dao.NewApplicationDAO(driver, auditService)

	policyValidator := validator.New(registry)

	services := &Services{
		Policy:      NewPolicyService(policyDAO, policyValidator, registry, cacheService, notificationSvc, eventBus, auditService),
		Application: NewApplicationService(applicationDAO, cacheService, notificationSvc, eventBus),
	}

	return services, nil
}
