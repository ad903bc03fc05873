// Package errors provides coded, categorized errors for the CLI, the preview
// server and scenario scripts.
//
// The core packages return plain sentinel errors (vdom.ErrInvalidSpec,
// store.ErrListenerFailure, store.ErrMergeFailure, render.ErrMountNotFound).
// FromError maps them to registry codes so they can be reported uniformly:
//
//	E001  Invalid element spec
//	E002  Store listener failed
//	E003  State update is not a mapping
//	E004  Mount point not found
//
// # Usage
//
//	err := errors.New(errors.CodeScenarioFailed).
//	    WithLocation("testdata/add.yaml", 12, 5).
//	    WithSuggestion("run replay with --update to see the current tree")
//
//	fmt.Fprint(os.Stderr, err.Format())
package errors
