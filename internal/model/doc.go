// Package model defines the domain types shared across layers: the Player
// storage row and its wire schema, the verified request identity, page
// metadata, and the uniform error envelope.
//
// Storage rows and wire schemas are distinct types with an explicit
// mapping (Player.Schema) so that column layout and response shape can
// evolve independently.
package model
