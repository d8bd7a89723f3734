// Package engine hands a constructed workflow graph off to an execution
// backend. The package defines the submission boundary and ships a plan
// writer that renders the graph as a reviewable submission plan.
package engine
