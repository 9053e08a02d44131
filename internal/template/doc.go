// Package template defines skeleton templates: the rig slots a project
// offers and the bone pairs built between them.
//
// Default returns the built-in biped template matching the classic layout:
// center column, arms, five fingers per hand, and legs, with the limb slots
// mirrorable to the character's other side. Projects can replace it with a
// YAML template file; Load validates the same invariants the default obeys.
package template
