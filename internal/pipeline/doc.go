// Package pipeline declares the cryo-EM preprocessing stages: the job type
// catalog, the per-stage naming chains, the gain-reference and defect-map
// prologue, and the per-micrograph subgraph (JPEG sidecar copy, motion
// correction, CTF estimation, preview rendering). Build ties them together
// into one workflow.Graph for the external engine.
package pipeline
