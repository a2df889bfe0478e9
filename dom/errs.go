package dom

import (
	"errors"
	"fmt"
)

var (
	// ErrContract is wrapped by every panic raised for a mutator called
	// against an incompatible node state.
	ErrContract = errors.New("node contract violation")

	ErrInvalidNode  = fmt.Errorf("%w: invalid node", ErrContract)
	ErrReleased     = fmt.Errorf("%w: memory released", ErrContract)
	ErrUndefinedKey = fmt.Errorf("%w: map key is undefined", ErrContract)
	ErrNoMemory     = fmt.Errorf("%w: no memory to allocate from", ErrContract)
)

// ContractError describes a mutator applied to a node whose type does
// not support it.
type ContractError struct {
	Op   string
	Type Type
	Err  error
}

func (e *ContractError) Error() string {
	if e.Err != nil && e.Err != ErrContract {
		return fmt.Sprintf("%s on %s node: %v", e.Op, e.Type, e.Err)
	}
	return fmt.Sprintf("%v: %s on %s node", ErrContract, e.Op, e.Type)
}

func (e *ContractError) Unwrap() error {
	if e.Err == nil {
		return ErrContract
	}
	return e.Err
}

func violate(op string, t Type) {
	panic(&ContractError{Op: op, Type: t, Err: ErrContract})
}

func violateErr(op string, t Type, err error) {
	panic(&ContractError{Op: op, Type: t, Err: err})
}
