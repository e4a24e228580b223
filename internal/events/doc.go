// Package events provides types and interfaces for publishing lifecycle
// events of the background controllers.
//
// Components emit events without knowing which handlers will process them,
// which keeps the notification center free of any dependency on the CLI or
// on logging sinks.
//
// The primary components are:
// - Event: a typed, timestamped record with a JSON payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
