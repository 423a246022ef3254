package handlers

// AppHandlers holds every handler in the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	SettingsHandler *SettingsHandler
	MatchHandler    *MatchHandler
	UserHandler     *UserHandler
}
