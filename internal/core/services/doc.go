// Package services implements the driving port interfaces. Services
// contain the core business logic (chunking, embedding policy,
// retrieval, answer synthesis) and orchestrate calls to driven ports.
package services
