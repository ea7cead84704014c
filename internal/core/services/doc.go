// Package services implements the driving port interfaces.
//
// Services orchestrate domain logic and call out to infrastructure
// through the driven ports. They hold the application state:
//
//   - ChatService: the conversation log and response pipeline
//   - DocumentService: book loading and validation
//
// # Import Rules
//
//   - Can Import: domain, ports/driving, ports/driven, logger
//   - Cannot Import: Any adapter package
package services
