package domain

import "errors"

// ErrPluginExists is returned when a plugin name is already taken in a registry.
var ErrPluginExists = errors.New("plugin already registered")

// ErrPluginNotFound is returned when a registry has no plugin under the requested name.
var ErrPluginNotFound = errors.New("plugin not found")

// ErrInvalidPlugin is returned when a registration has an empty name or no factory.
var ErrInvalidPlugin = errors.New("invalid plugin registration")

// ErrInvalidCode is returned when bytecode handed to an execution cannot be decoded.
var ErrInvalidCode = errors.New("invalid bytecode")
