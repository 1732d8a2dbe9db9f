// Package api is the operator API of TicketIndexor.
// @title TicketIndexor Operator API
// @version 1.0
// @description Ingestion status, quarantine inspection and replay for the ticketing indexer
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/TicketIndexor
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api
