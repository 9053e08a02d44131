// Package commands defines the autorig CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init     Create the .autorig state directory for a project
//   - scene    Load an OBJ mesh and inspect the scene
//   - select   Author the vertex selection joints are placed from
//   - joint    Place, mirror and delete template-slot joints
//   - spine    Build and resize the spine chain
//   - bones    Parent placed joints into a skeleton
//   - status   Show per-slot indicator lights and spine state
//   - export   Write the joint hierarchy as JSON or YAML
//   - explain  Print placement guidance for a slot
//   - watch    Watch the mesh file for re-exports
//
// # Implementation
//
// The root command locates the project (walking up from the working
// directory to the nearest .autorig) and builds a dependency graph of
// stores and services before any subcommand runs. With --host the same
// operations are sent to a running rigd instead of touching local state.
package commands
