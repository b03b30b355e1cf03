package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	ItemHandler    *ItemHandler
	MatchHandler   *MatchHandler
	NearbyHandler  *NearbyHandler
	ContactHandler *ContactHandler
	UploadHandler  *UploadHandler
}
