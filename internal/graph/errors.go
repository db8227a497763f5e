package graph

import (
	"errors"
	"fmt"
)

var (
	ErrSelfLoop         = errors.New("cannot connect a step to itself")
	ErrDuplicateEdge    = errors.New("this connection already exists")
	ErrWouldCreateCycle = errors.New("this connection would create a cycle, which is not allowed")
	ErrUnknownNode      = errors.New("step not found")
	ErrPathNotFound     = errors.New("no path found")
	ErrParse            = errors.New("failed to parse graph")
)

// ErrNoRoots is returned by PathTo when every step has an incoming connection.
var ErrNoRoots = fmt.Errorf("%w: no starting points found, create a step with no incoming connections", ErrPathNotFound)
