package v1

// BasePath is the URL prefix shared by all version 1 routes.
const BasePath = "/api/v1/css"
