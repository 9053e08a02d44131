// Package app wires application dependencies for the CLI.
//
// It builds the concrete stores, the scene host and the rigging services
// from Config, exposing them via the Wire struct for commands to use. It
// also owns the project layout: the .autorig state directory and its
// config.yaml.
package app
