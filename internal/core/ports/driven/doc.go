// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Responder: Produces an assistant reply from user text and the
//     current document. This is the seam where a real completion API
//     attaches; the default implementation is a placeholder.
//   - DocumentSource: Reads document bytes by declared name and optionally
//     watches the underlying file for changes.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
