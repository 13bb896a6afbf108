// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routetree

// DiagnosticKind classifies a non-fatal observation made while building a
// tree. Diagnostics never fail construction; they surface route definitions
// that are legal but worth a second look.
type DiagnosticKind uint8

const (
	// DiagHighParamCount flags a route declaring an unusually large number
	// of parameters.
	DiagHighParamCount DiagnosticKind = iota

	// DiagValidationSkipped flags a tree built with name validation
	// disabled.
	DiagValidationSkipped

	// DiagUnknownForwardTarget flags a route whose ForwardTo names a route
	// absent from the tree. The target may be added later, so this is not
	// a construction error.
	DiagUnknownForwardTarget
)

// String returns the kind's name.
func (k DiagnosticKind) String() string {
	switch k {
	case DiagHighParamCount:
		return "high_param_count"
	case DiagValidationSkipped:
		return "validation_skipped"
	case DiagUnknownForwardTarget:
		return "unknown_forward_target"
	default:
		return "unknown"
	}
}

// DiagnosticEvent is one observation emitted during tree construction.
type DiagnosticEvent struct {
	// Kind classifies the event.
	Kind DiagnosticKind

	// Route is the full name of the route the event concerns, "" for
	// tree-level events.
	Route string

	// Detail is a human-readable explanation.
	Detail string
}

// DiagnosticHandler receives construction diagnostics. Handlers are invoked
// synchronously during New, AddRoutes, and RemoveRoutes, so they must be
// fast and non-blocking.
type DiagnosticHandler interface {
	HandleDiagnostic(event DiagnosticEvent)
}

// DiagnosticHandlerFunc adapts a function to the DiagnosticHandler
// interface.
type DiagnosticHandlerFunc func(event DiagnosticEvent)

// HandleDiagnostic calls f(event).
func (f DiagnosticHandlerFunc) HandleDiagnostic(event DiagnosticEvent) {
	f(event)
}

// highParamCountThreshold is the parameter count above which a route is
// flagged with DiagHighParamCount.
const highParamCountThreshold = 8
