// Package guard detects values that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands, queries and value objects. Its zero value
// marks an instance that was never passed through a constructor, so Validate fails on
// structs created with a literal.
//
//	type MarkPackageDeliveredCommand struct {
//	    packageID kernel.UUID
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c MarkPackageDeliveredCommand) Validate() error {
//	    return c.guard.Validate(ErrMarkPackageDeliveredCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) unless the
// guard came from NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
