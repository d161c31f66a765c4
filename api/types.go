package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler       authHandler
	userHandler       userHandler
	recipeHandler     recipeHandler
	tagHandler        tagHandler
	ingredientHandler ingredientHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
	Field  string `json:"field,omitempty"`
	Cause  string `json:"cause,omitempty"`
}
