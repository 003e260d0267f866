// Package ui is the Bubble Tea front end of the card.
//
// Core abstractions:
//   - View: a screen with its own update and view (Elm-style)
//   - AppModel: owns the card.Controller and routes messages to the view of
//     the current screen
//   - Canvas: composes styled blocks and particles at absolute positions
//   - KeybindRegistry: screen-scoped key bindings rendered as a help footer
//   - FocusManager: rotates keyboard focus between the proposal buttons
package ui
