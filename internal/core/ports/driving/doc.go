// Package driving defines the interfaces external actors use to drive
// the application core (primary/inbound ports). The CLI and MCP
// adapters depend on these interfaces; core services implement them.
package driving
