package main

// General API documentation for swaggo. Run `swag init -g cmd/gatewayd/docs.go`
// to generate docs, then build with -tags=swagger to serve them.
//
// @title           gatewayd API
// @version         1.0
// @description     Console API of a mock LLM gateway: LoRA adapter activation,
// @description     model services, rate limits, channels, unified services
// @description     and an observability dashboard.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
//
// @securityDefinitions.apikey SessionCookie
// @in                         cookie
// @name                       gatewayd_session
