// Package scenario runs YAML scripts against the demo application in an
// in-memory document.
//
// A script sets an optional starting fragment, performs user actions and
// states what the final UI and state must look like:
//
//	name: toggle then filter
//	steps:
//	  - input: {id: todoInput, value: a}
//	  - click: Add
//	  - event: {path: [6, 0], type: click}
//	  - click: Show Not Completed
//	expect:
//	  items: 0
//	  hash: "#notcompleted"
//
// Element paths are element-child indexes below the mount point; text
// nodes are not counted.
package scenario
