package services

// ServiceContainer holds every service in the application.
type ServiceContainer struct {
	AuthService       AuthService
	ProfileService    ProfileService
	EngagementService EngagementService
}
