// Package component defines the core interfaces for lifecycle-managed
// infrastructure in rxkit.
//
// Components represent resources that require startup, shutdown, and
// health monitoring, such as a database connection or a tracer provider.
// The Registry starts components in registration order and stops them in
// reverse, so dependencies come up before their dependents and go down
// after them.
//
// # Interfaces
//
//   - Component: core lifecycle interface (Name/Start/Stop/Health)
//   - Describable: optional startup summary descriptions
package component
